package app_errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func MapPgxError(err error) *AppError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return NewAppError(409, ErrConflict, "conflict", err)
		case pgForeignKeyViolation, pgCheckViolation:
			return NewAppError(400, ErrValidation, "invalid_request", err)
		}
	}

	return NewStorageError(err)
}

// IsUniqueViolation prüft, ob err eine Verletzung des angegebenen Unique-Constraints ist.
// Ein leerer constraint passt auf jeden Unique-Constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
