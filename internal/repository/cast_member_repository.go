package repository

import (
	"context"

	"catalog-backend/internal/database"
	"catalog-backend/internal/models"

	"github.com/google/uuid"
)

type CastMemberRepository interface {
	Create(ctx context.Context, member *models.CastMember) error
	Update(ctx context.Context, member *models.CastMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CastMember, error)
	FindAll(ctx context.Context, params ListParams) ([]models.CastMember, int64, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID, activeOnly bool) ([]uuid.UUID, error)
}

type castMemberRepository struct {
	crudRepository[models.CastMember]
}

func NewCastMemberRepository(db *database.Database) CastMemberRepository {
	return &castMemberRepository{
		crudRepository: newCRUDRepository[models.CastMember](db, "cast member", "name",
			[]string{"name", "role", "created_at"}, nil),
	}
}
