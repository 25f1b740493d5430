package repository

import (
	"context"

	"catalog-backend/internal/database"
	"catalog-backend/internal/models"

	"github.com/google/uuid"
)

type VideoRepository interface {
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	FindAll(ctx context.Context, params ListParams) ([]models.Video, int64, error)
}

type videoRepository struct {
	crudRepository[models.Video]
}

func NewVideoRepository(db *database.Database) VideoRepository {
	return &videoRepository{
		crudRepository: newCRUDRepository[models.Video](db, "video", "title",
			[]string{"title", "release_at", "classification", "updated_at"}, models.Video{}.Relations()),
	}
}
