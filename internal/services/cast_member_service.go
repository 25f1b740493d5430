package services

import (
	"context"

	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CastMemberInput struct {
	Name string                `json:"name" validate:"required,max=255"`
	Role models.CastMemberRole `json:"role" validate:"required,cast_role"`
}

type CastMemberService interface {
	List(ctx context.Context, params repository.ListParams) ([]models.CastMember, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CastMember, error)
	Create(ctx context.Context, input CastMemberInput) (*models.CastMember, error)
	Update(ctx context.Context, id uuid.UUID, input CastMemberInput) (*models.CastMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type castMemberService struct {
	repo      repository.CastMemberRepository
	validator *validation.Validator
	observer  *ModelObserver
	logger    *logrus.Logger
}

func NewCastMemberService(repo repository.CastMemberRepository, validator *validation.Validator, observer *ModelObserver, logger *logrus.Logger) CastMemberService {
	return &castMemberService{
		repo:      repo,
		validator: validator,
		observer:  observer,
		logger:    logger,
	}
}

func (s *castMemberService) List(ctx context.Context, params repository.ListParams) ([]models.CastMember, int64, error) {
	return s.repo.FindAll(ctx, params)
}

func (s *castMemberService) Get(ctx context.Context, id uuid.UUID) (*models.CastMember, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *castMemberService) Create(ctx context.Context, input CastMemberInput) (*models.CastMember, error) {
	if err := s.validator.Struct(input).OrNil(); err != nil {
		return nil, err
	}

	member := &models.CastMember{Name: input.Name, Role: input.Role}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.observer.Created(ctx, member)
	return member, nil
}

func (s *castMemberService) Update(ctx context.Context, id uuid.UUID, input CastMemberInput) (*models.CastMember, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(input).OrNil(); err != nil {
		return nil, err
	}

	member.Name = input.Name
	member.Role = input.Role
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	s.observer.Updated(ctx, member)
	return member, nil
}

func (s *castMemberService) Delete(ctx context.Context, id uuid.UUID) error {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.observer.Deleted(ctx, member)
	return nil
}
