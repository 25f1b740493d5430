package repository

import (
	"context"

	"catalog-backend/internal/database"
	"catalog-backend/internal/models"

	"github.com/google/uuid"
)

type GenreRepository interface {
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Genre, error)
	FindAll(ctx context.Context, params ListParams) ([]models.Genre, int64, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID, activeOnly bool) ([]uuid.UUID, error)
}

type genreRepository struct {
	crudRepository[models.Genre]
}

func NewGenreRepository(db *database.Database) GenreRepository {
	return &genreRepository{
		crudRepository: newCRUDRepository[models.Genre](db, "genre", "name",
			[]string{"name", "is_active", "created_at"}, models.Genre{}.Relations()),
	}
}
