package services

import (
	"context"

	"catalog-backend/internal/apperrors"

	"github.com/google/uuid"
)

// ExistenceLookup returns the subset of ids backed by live rows.
type ExistenceLookup interface {
	ExistingIDs(ctx context.Context, ids []uuid.UUID, activeOnly bool) ([]uuid.UUID, error)
}

// parseUUIDs skips malformed values; inputs are validated with the uuid rule
// before they get here.
func parseUUIDs(values []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// checkReferences records a validation failure on field unless every id
// refers to a row that exists, is not soft-deleted and, with activeOnly, is
// active.
func checkReferences(ctx context.Context, verr *apperrors.ValidationError, field string, ids []uuid.UUID, lookup ExistenceLookup, activeOnly bool) error {
	if len(ids) == 0 || verr.Has(field) {
		return nil
	}

	found, err := lookup.ExistingIDs(ctx, ids, activeOnly)
	if err != nil {
		return err
	}

	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			verr.Add(field, "selected value "+id.String()+" is invalid")
			return nil
		}
	}
	return nil
}
