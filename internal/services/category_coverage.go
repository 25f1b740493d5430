package services

import (
	"context"

	"catalog-backend/internal/repository"

	"github.com/google/uuid"
)

// CoverageMessage is reported on "genres" when coverage fails.
const CoverageMessage = "every genre must belong to one of the selected categories and together cover all of them"

type GenreCategoryLookup interface {
	CategoriesOfGenre(ctx context.Context, genreID uuid.UUID, within []uuid.UUID) ([]uuid.UUID, error)
}

// CategoryCoverageValidator checks that a genre selection is consistent with
// a category selection: every genre must be associated with at least one of
// the categories, and together the genres must reach all of them.
type CategoryCoverageValidator struct {
	lookup GenreCategoryLookup
}

func NewCategoryCoverageValidator(lookup GenreCategoryLookup) *CategoryCoverageValidator {
	return &CategoryCoverageValidator{lookup: lookup}
}

// Validate counts each category once no matter how many genres reach it.
func (v *CategoryCoverageValidator) Validate(ctx context.Context, categoryIDs, genreIDs []uuid.UUID) (bool, error) {
	categories := repository.UniqueIDs(categoryIDs)
	genres := repository.UniqueIDs(genreIDs)

	if len(categories) == 0 || len(genres) == 0 {
		return false, nil
	}

	covered := make(map[uuid.UUID]struct{}, len(categories))
	for _, genreID := range genres {
		found, err := v.lookup.CategoriesOfGenre(ctx, genreID, categories)
		if err != nil {
			return false, err
		}
		if len(found) == 0 {
			return false, nil
		}
		for _, categoryID := range found {
			covered[categoryID] = struct{}{}
		}
	}

	return len(covered) == len(categories), nil
}
