package repository

import (
	"context"

	"catalog-backend/internal/database"
	"catalog-backend/internal/models"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindAll(ctx context.Context, params ListParams) ([]models.Category, int64, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID, activeOnly bool) ([]uuid.UUID, error)
}

type categoryRepository struct {
	crudRepository[models.Category]
}

func NewCategoryRepository(db *database.Database) CategoryRepository {
	return &categoryRepository{
		crudRepository: newCRUDRepository[models.Category](db, "category", "name",
			[]string{"name", "is_active", "created_at"}, nil),
	}
}
