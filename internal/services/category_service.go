package services

import (
	"context"

	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryService interface {
	List(ctx context.Context, params repository.ListParams) ([]models.Category, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, input CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo      repository.CategoryRepository
	validator *validation.Validator
	observer  *ModelObserver
	logger    *logrus.Logger
}

func NewCategoryService(repo repository.CategoryRepository, validator *validation.Validator, observer *ModelObserver, logger *logrus.Logger) CategoryService {
	return &categoryService{
		repo:      repo,
		validator: validator,
		observer:  observer,
		logger:    logger,
	}
}

func (s *categoryService) List(ctx context.Context, params repository.ListParams) ([]models.Category, int64, error) {
	return s.repo.FindAll(ctx, params)
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if err := s.validator.Struct(input).OrNil(); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    boolOrDefault(input.IsActive, true),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.observer.Created(ctx, category)
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(input).OrNil(); err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	category.IsActive = boolOrDefault(input.IsActive, category.IsActive)

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.observer.Updated(ctx, category)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.observer.Deleted(ctx, category)
	return nil
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
