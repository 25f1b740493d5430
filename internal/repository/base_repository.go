package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultPerPage = 10

// ListParams carries the list query accepted by every resource.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	Sort    string
	Dir     string
	All     bool
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
	return p
}

// crudRepository implements the operations shared by every catalog entity.
type crudRepository[T any] struct {
	db           *database.Database
	timeout      time.Duration
	resource     string
	searchColumn string
	sortable     map[string]bool
	relations    []string
}

func newCRUDRepository[T any](db *database.Database, resource, searchColumn string, sortable []string, relations []string) crudRepository[T] {
	sortSet := make(map[string]bool, len(sortable))
	for _, column := range sortable {
		sortSet[column] = true
	}
	return crudRepository[T]{
		db:           db,
		timeout:      db.GetQueryTimeout(),
		resource:     resource,
		searchColumn: searchColumn,
		sortable:     sortSet,
		relations:    relations,
	}
}

func (r *crudRepository[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// withRelations preloads associations including soft-deleted referents.
func (r *crudRepository[T]) withRelations(db *gorm.DB) *gorm.DB {
	for _, relation := range r.relations {
		db = db.Preload(relation, func(tx *gorm.DB) *gorm.DB {
			return tx.Unscoped()
		})
	}
	return db
}

func (r *crudRepository[T]) Create(ctx context.Context, entity *T) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return MapDBError(r.resource, r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error)
}

// Update writes every column of entity. A row deleted or soft-deleted since
// entity was loaded is NotFound and stays deleted.
func (r *crudRepository[T]) Update(ctx context.Context, entity *T) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).Model(entity).
		Select("*").
		Omit("id", "created_at", "deleted_at", clause.Associations).
		Updates(entity)
	if result.Error != nil {
		return MapDBError(r.resource, result.Error)
	}
	if result.RowsAffected == 0 {
		var id any
		if owner, ok := any(entity).(Owner); ok {
			id = owner.GetID()
		}
		return apperrors.NotFound(r.resource, id)
	}
	return nil
}

// Delete soft-deletes the row; unknown or already deleted rows are NotFound.
func (r *crudRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entity T
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&entity)
	if result.Error != nil {
		return MapDBError(r.resource, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(r.resource, id)
	}
	return nil
}

func (r *crudRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entity T
	err := r.withRelations(r.db.WithContext(ctx)).Where("id = ?", id.String()).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(r.resource, id)
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll applies search, sort and pagination. Without an explicit sort the
// oldest rows come first.
func (r *crudRepository[T]) FindAll(ctx context.Context, params ListParams) ([]T, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	params = params.normalized()

	var entities []T
	var total int64

	var model T
	query := r.db.WithContext(ctx).Model(&model)

	if search := strings.TrimSpace(params.Search); search != "" && r.searchColumn != "" {
		query = query.Where(r.searchColumn+" LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if r.sortable[params.Sort] {
		desc := !strings.EqualFold(params.Dir, "asc")
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: params.Sort}, Desc: desc})
	} else {
		query = query.Order("created_at ASC")
	}

	query = r.withRelations(query)
	if !params.All {
		query = query.Offset((params.Page - 1) * params.PerPage).Limit(params.PerPage)
	}

	if err := query.Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// ExistingIDs returns the subset of ids whose rows exist and are not
// soft-deleted; with activeOnly the rows must also have is_active set.
func (r *crudRepository[T]) ExistingIDs(ctx context.Context, ids []uuid.UUID, activeOnly bool) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var model T
	query := r.db.WithContext(ctx).Model(&model).Where("id IN ?", idStrings(ids))
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var found []string
	if err := query.Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return parseIDs(found)
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseIDs(values []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// UniqueIDs drops duplicates while keeping the first occurrence order.
func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
