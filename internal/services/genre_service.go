package services

import (
	"context"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type GenreInput struct {
	Name       string   `json:"name" validate:"required,min=3,max=255"`
	IsActive   *bool    `json:"is_active"`
	Categories []string `json:"categories" validate:"required,min=1,dive,uuid"`
}

type GenreService interface {
	List(ctx context.Context, params repository.ListParams) ([]models.Genre, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Genre, error)
	Create(ctx context.Context, input GenreInput) (*models.Genre, error)
	Update(ctx context.Context, id uuid.UUID, input GenreInput) (*models.Genre, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type genreService struct {
	repo         repository.GenreRepository
	categoryRepo repository.CategoryRepository
	writer       *TransactionalWriter
	validator    *validation.Validator
	observer     *ModelObserver
	logger       *logrus.Logger
}

func NewGenreService(repo repository.GenreRepository, categoryRepo repository.CategoryRepository, writer *TransactionalWriter, validator *validation.Validator, observer *ModelObserver, logger *logrus.Logger) GenreService {
	return &genreService{
		repo:         repo,
		categoryRepo: categoryRepo,
		writer:       writer,
		validator:    validator,
		observer:     observer,
		logger:       logger,
	}
}

func (s *genreService) List(ctx context.Context, params repository.ListParams) ([]models.Genre, int64, error) {
	return s.repo.FindAll(ctx, params)
}

func (s *genreService) Get(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *genreService) Create(ctx context.Context, input GenreInput) (*models.Genre, error) {
	categories, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	genre := &models.Genre{
		Name:     input.Name,
		IsActive: boolOrDefault(input.IsActive, true),
	}
	err = s.writer.CreateOrUpdate(ctx, WriteRequest{
		Entity:    genre,
		Relations: map[repository.Relation][]uuid.UUID{repository.RelationCategories: categories},
	})
	if err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Update(ctx context.Context, id uuid.UUID, input GenreInput) (*models.Genre, error) {
	genre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	categories, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	genre.Name = input.Name
	genre.IsActive = boolOrDefault(input.IsActive, genre.IsActive)

	err = s.writer.CreateOrUpdate(ctx, WriteRequest{
		Entity:    genre,
		Update:    true,
		Relations: map[repository.Relation][]uuid.UUID{repository.RelationCategories: categories},
	})
	if err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Delete(ctx context.Context, id uuid.UUID) error {
	genre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.observer.Deleted(ctx, genre)
	return nil
}

func (s *genreService) validate(ctx context.Context, input GenreInput) ([]uuid.UUID, error) {
	verr := apperrors.NewValidationError()
	verr.Merge(s.validator.Struct(input))

	categories := repository.UniqueIDs(parseUUIDs(input.Categories))
	if err := checkReferences(ctx, verr, "categories", categories, s.categoryRepo, true); err != nil {
		return nil, err
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return categories, nil
}
