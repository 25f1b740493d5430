package repository

import (
	"errors"

	"catalog-backend/internal/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapDBError turns integrity failures into ConstraintViolationError. The
// gorm-translated sentinels cover every dialect; the SQLSTATE check covers
// errors that reach us untranslated from pgx.
func MapDBError(table string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &apperrors.ConstraintViolationError{Table: table, Detail: "foreign key violation", Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperrors.ConstraintViolationError{Table: table, Detail: "duplicate key", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return &apperrors.ConstraintViolationError{Table: table, Detail: "foreign key violation", Err: err}
		case "23505":
			return &apperrors.ConstraintViolationError{Table: table, Detail: "duplicate key", Err: err}
		}
	}

	return err
}
