package storeerr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		in       error
		expected error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, ErrUniqueViolation},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "favorites_user_id_fkey"}, ErrForeignKeyViolation},
		{"not null", &pgconn.PgError{Code: "23502", ColumnName: "name"}, ErrNotNullViolation},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "reservations_party_count_check"}, ErrCheckViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.in)
			if tt.expected == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.expected)
		})
	}
}

func TestTranslate_UnknownErrorPassesThrough(t *testing.T) {
	in := errors.New("connection refused")
	assert.Equal(t, in, Translate(in))

	pgSyntax := &pgconn.PgError{Code: "42601"}
	assert.Equal(t, error(pgSyntax), Translate(pgSyntax))
}

func TestIsConstraintViolation(t *testing.T) {
	assert.True(t, IsConstraintViolation(Translate(&pgconn.PgError{Code: "23505"})))
	assert.True(t, IsConstraintViolation(Translate(&pgconn.PgError{Code: "23503"})))
	assert.False(t, IsConstraintViolation(ErrNotFound))
	assert.False(t, IsConstraintViolation(errors.New("boom")))
}
