// Package storeerr translates database driver errors into the
// application error taxonomy. Repositories pass every driver error
// through Translate; handlers map the sentinel errors to HTTP statuses.
package storeerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when no record matches the query.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when a record exists but is owned
	// by a different user than the caller.
	ErrForbidden = errors.New("record owned by another user")

	// ErrUniqueViolation is returned when an insert or update
	// breaks a uniqueness constraint.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrForeignKeyViolation is returned when a referenced record
	// does not exist.
	ErrForeignKeyViolation = errors.New("referenced record does not exist")

	// ErrNotNullViolation is returned when a required column is missing.
	ErrNotNullViolation = errors.New("required column is missing")

	// ErrCheckViolation is returned when a value fails a CHECK constraint.
	ErrCheckViolation = errors.New("check constraint violation")
)

// Postgres SQLSTATE codes for the constraint classes we translate.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// Translate maps sql.ErrNoRows and pgconn.PgError constraint codes
// to the taxonomy above. Any other error is returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", ErrUniqueViolation, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrForeignKeyViolation, pgErr.ConstraintName)
		case codeNotNullViolation:
			return fmt.Errorf("%w: %s", ErrNotNullViolation, pgErr.ColumnName)
		case codeCheckViolation:
			return fmt.Errorf("%w: %s", ErrCheckViolation, pgErr.ConstraintName)
		}
	}

	return err
}

// IsConstraintViolation reports whether err is any store-enforced
// constraint breach.
func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrUniqueViolation) ||
		errors.Is(err, ErrForeignKeyViolation) ||
		errors.Is(err, ErrNotNullViolation) ||
		errors.Is(err, ErrCheckViolation)
}
