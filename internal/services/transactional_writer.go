package services

import (
	"context"
	"errors"
	"sort"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/database"
	"catalog-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Model event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Entity is a parent entity written through the TransactionalWriter.
type Entity interface {
	repository.Owner
	Relations() []string
}

// WriteRequest describes one create-or-update of a parent entity. Relations
// lists the desired association sets; relations missing from the map are
// left as stored. Files holds submitted file fields and is only honoured when
// Entity implements FileOwner.
type WriteRequest struct {
	Entity    Entity
	Update    bool
	Relations map[repository.Relation][]uuid.UUID
	Files     FileSet
}

// Commit describes a successful write: the reloaded entity, the action and
// the association rows the write inserted or deleted.
type Commit struct {
	Entity repository.Owner
	Action string
	Pivots []repository.SyncResult
}

// PostCommitHook runs after a successful write.
type PostCommitHook func(ctx context.Context, commit Commit)

// TransactionalWriter persists a parent entity, its associations and its
// uploads as one unit. Either every change is visible afterwards or none is,
// and files uploaded by a failed attempt are removed again.
type TransactionalWriter struct {
	db        *database.Database
	relations repository.RelationStore
	files     *FileLifecycleManager
	hooks     []PostCommitHook
	logger    *logrus.Logger
}

func NewTransactionalWriter(db *database.Database, relations repository.RelationStore, files *FileLifecycleManager, logger *logrus.Logger, hooks ...PostCommitHook) *TransactionalWriter {
	return &TransactionalWriter{
		db:        db,
		relations: relations,
		files:     files,
		hooks:     hooks,
		logger:    logger,
	}
}

func (w *TransactionalWriter) CreateOrUpdate(ctx context.Context, req WriteRequest) error {
	if req.Entity == nil {
		return errors.New("write request has no entity")
	}

	var (
		uploads    []StagedUpload
		superseded map[string]string
		kept       map[string]string
	)

	owner, hasFiles := req.Entity.(FileOwner)
	if hasFiles && len(req.Files) > 0 {
		var err error
		uploads, err = w.files.ExtractUploads(req.Files, owner.FileFields())
		if err != nil {
			return err
		}

		kept = owner.FileNames()
		if req.Update {
			superseded = w.files.CaptureChangedFileFields(kept, req.Files, owner.FileFields())
		}
		for field, value := range req.Files {
			owner.SetFileName(field, value.Name)
		}
	}

	var (
		attempted []string
		pivots    []repository.SyncResult
	)
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := w.persist(tx, req); err != nil {
			return err
		}

		for _, relation := range sortedRelations(req.Relations) {
			result, err := w.relations.Sync(ctx, tx, req.Entity, relation, req.Relations[relation])
			if err != nil {
				return err
			}
			if result.Changed() {
				pivots = append(pivots, result)
			}
		}

		for _, upload := range uploads {
			attempted = append(attempted, upload.Name)
			if err := w.files.Store(ctx, owner.FilesDir(), upload); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if len(attempted) > 0 {
			w.files.DeleteAll(context.WithoutCancel(ctx), owner.FilesDir(), withoutNames(attempted, kept))
		}
		w.logger.WithError(err).WithFields(logrus.Fields{
			"table": req.Entity.TableName(),
			"id":    req.Entity.GetID(),
		}).Warn("Write rolled back")
		return err
	}

	if len(superseded) > 0 {
		old := make([]string, 0, len(superseded))
		for _, name := range superseded {
			old = append(old, name)
		}
		w.files.DeleteAll(ctx, owner.FilesDir(), withoutNames(old, owner.FileNames()))
	}

	if err := w.reload(ctx, req.Entity); err != nil {
		return err
	}

	action := ActionCreated
	if req.Update {
		action = ActionUpdated
	}
	commit := Commit{Entity: req.Entity, Action: action, Pivots: pivots}
	for _, hook := range w.hooks {
		hook(ctx, commit)
	}
	return nil
}

// persist inserts or updates the entity row. An update matching no live row
// is NotFound: the row was deleted or soft-deleted since it was loaded.
func (w *TransactionalWriter) persist(tx *gorm.DB, req WriteRequest) error {
	table := req.Entity.TableName()

	if !req.Update {
		return repository.MapDBError(table, tx.Omit(clause.Associations).Create(req.Entity).Error)
	}

	result := tx.Model(req.Entity).
		Select("*").
		Omit("id", "created_at", "deleted_at", clause.Associations).
		Updates(req.Entity)
	if result.Error != nil {
		return repository.MapDBError(table, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(table, req.Entity.GetID())
	}
	return nil
}

// reload refreshes the entity and its associations, soft-deleted referents
// included.
func (w *TransactionalWriter) reload(ctx context.Context, entity Entity) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.GetQueryTimeout())
	defer cancel()

	query := w.db.WithContext(ctx)
	for _, relation := range entity.Relations() {
		query = query.Preload(relation, func(tx *gorm.DB) *gorm.DB {
			return tx.Unscoped()
		})
	}

	err := query.Where("id = ?", entity.GetID().String()).First(entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity.TableName(), entity.GetID())
	}
	return err
}

func sortedRelations(relations map[repository.Relation][]uuid.UUID) []repository.Relation {
	keys := make([]repository.Relation, 0, len(relations))
	for relation := range relations {
		keys = append(keys, relation)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// withoutNames drops every name still referenced by a file field.
func withoutNames(names []string, referenced map[string]string) []string {
	inUse := make(map[string]struct{}, len(referenced))
	for _, name := range referenced {
		inUse[name] = struct{}{}
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := inUse[name]; ok {
			continue
		}
		out = append(out, name)
	}
	return out
}
