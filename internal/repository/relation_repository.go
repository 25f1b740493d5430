package repository

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Relation string

const (
	RelationCategories  Relation = "categories"
	RelationGenres      Relation = "genres"
	RelationCastMembers Relation = "cast_members"
)

// Owner is a parent entity of many-to-many associations.
type Owner interface {
	TableName() string
	GetID() uuid.UUID
}

type pivot struct {
	table          string
	parentColumn   string
	referentColumn string
	referentTable  string
}

// pivots maps parent table and relation name to the association table.
var pivots = map[string]map[Relation]pivot{
	"genres": {
		RelationCategories: {table: "category_genre", parentColumn: "genre_id", referentColumn: "category_id", referentTable: "categories"},
	},
	"videos": {
		RelationCategories:  {table: "category_video", parentColumn: "video_id", referentColumn: "category_id", referentTable: "categories"},
		RelationGenres:      {table: "genre_video", parentColumn: "video_id", referentColumn: "genre_id", referentTable: "genres"},
		RelationCastMembers: {table: "cast_member_video", parentColumn: "video_id", referentColumn: "cast_member_id", referentTable: "cast_members"},
	},
}

// SyncResult lists the association rows one Sync inserted and deleted.
type SyncResult struct {
	Table          string
	ParentColumn   string
	ReferentColumn string
	ParentID       uuid.UUID
	Added          []uuid.UUID
	Removed        []uuid.UUID
}

// Changed reports whether the sync touched any row.
func (r SyncResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// Row returns the pivot row of referentID as column -> id.
func (r SyncResult) Row(referentID uuid.UUID) map[string]string {
	return map[string]string{
		r.ParentColumn:   r.ParentID.String(),
		r.ReferentColumn: referentID.String(),
	}
}

// RelationStore persists the many-to-many associations of parent entities.
type RelationStore interface {
	// Sync makes the stored association set of (owner, relation) equal to the
	// distinct elements of desired. Rows present in both sets are untouched.
	// tx may be nil to run outside a transaction. The result lists the rows
	// actually inserted and deleted.
	Sync(ctx context.Context, tx *gorm.DB, owner Owner, relation Relation, desired []uuid.UUID) (SyncResult, error)
	CurrentIDs(ctx context.Context, tx *gorm.DB, owner Owner, relation Relation) ([]uuid.UUID, error)
	// CategoriesOfGenre returns the categories associated with genreID,
	// restricted to the given candidates.
	CategoriesOfGenre(ctx context.Context, genreID uuid.UUID, within []uuid.UUID) ([]uuid.UUID, error)
}

type relationStore struct {
	db      *database.Database
	timeout time.Duration
}

func NewRelationStore(db *database.Database) RelationStore {
	return &relationStore{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *relationStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *relationStore) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func lookupPivot(owner Owner, relation Relation) (pivot, error) {
	p, ok := pivots[owner.TableName()][relation]
	if !ok {
		return pivot{}, fmt.Errorf("relation %q is not defined for %s", relation, owner.TableName())
	}
	return p, nil
}

func (r *relationStore) CurrentIDs(ctx context.Context, tx *gorm.DB, owner Owner, relation Relation) ([]uuid.UUID, error) {
	p, err := lookupPivot(owner, relation)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var current []string
	err = r.conn(ctx, tx).Table(p.table).
		Where(p.parentColumn+" = ?", owner.GetID().String()).
		Pluck(p.referentColumn, &current).Error
	if err != nil {
		return nil, err
	}
	return parseIDs(current)
}

func (r *relationStore) Sync(ctx context.Context, tx *gorm.DB, owner Owner, relation Relation, desired []uuid.UUID) (SyncResult, error) {
	p, err := lookupPivot(owner, relation)
	if err != nil {
		return SyncResult{}, err
	}

	current, err := r.CurrentIDs(ctx, tx, owner, relation)
	if err != nil {
		return SyncResult{}, err
	}

	added, removed := diffIDs(current, UniqueIDs(desired))
	result := SyncResult{
		Table:          p.table,
		ParentColumn:   p.parentColumn,
		ReferentColumn: p.referentColumn,
		ParentID:       owner.GetID(),
	}
	if len(added) == 0 && len(removed) == 0 {
		return result, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	db := r.conn(ctx, tx)
	parentID := owner.GetID().String()

	if len(removed) > 0 {
		err := db.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s IN ?", p.table, p.parentColumn, p.referentColumn),
			parentID, idStrings(removed),
		).Error
		if err != nil {
			return SyncResult{}, MapDBError(p.table, err)
		}
		result.Removed = removed
	}

	if len(added) == 0 {
		return result, nil
	}

	// Soft-deleted referents are valid association targets, so the existence
	// check is unscoped.
	var existing int64
	err = db.Table(p.referentTable).Where("id IN ?", idStrings(added)).Count(&existing).Error
	if err != nil {
		return SyncResult{}, err
	}
	if existing != int64(len(added)) {
		return SyncResult{}, &apperrors.ConstraintViolationError{
			Table:  p.table,
			Detail: fmt.Sprintf("%d of %d %s do not exist", int64(len(added))-existing, len(added), p.referentTable),
		}
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", p.table, p.parentColumn, p.referentColumn)
	for _, id := range added {
		if err := db.Exec(insert, parentID, id.String()).Error; err != nil {
			return SyncResult{}, MapDBError(p.table, err)
		}
	}
	result.Added = added
	return result, nil
}

func (r *relationStore) CategoriesOfGenre(ctx context.Context, genreID uuid.UUID, within []uuid.UUID) ([]uuid.UUID, error) {
	if len(within) == 0 {
		return nil, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var found []string
	err := r.db.WithContext(ctx).Table("category_genre").
		Where("genre_id = ?", genreID.String()).
		Where("category_id IN ?", idStrings(within)).
		Distinct().
		Pluck("category_id", &found).Error
	if err != nil {
		return nil, err
	}
	return parseIDs(found)
}

// diffIDs returns desired minus current and current minus desired.
func diffIDs(current, desired []uuid.UUID) (added, removed []uuid.UUID) {
	currentSet := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
		if _, ok := currentSet[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
