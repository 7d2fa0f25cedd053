// Package repositories wires the generic resource repository to each
// entity table and adds the bespoke queries individual modules need.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/acmeweb/acme-api/internal/logger"
	"github.com/acmeweb/acme-api/internal/models"
	"github.com/acmeweb/acme-api/internal/resource"
	"github.com/acmeweb/acme-api/internal/storeerr"
)

// UserRepository handles the users table.
type UserRepository struct {
	*resource.Repository[models.User]
}

func NewUserRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserRepository {
	return &UserRepository{
		Repository: resource.New[models.User](db, txGetter, resource.Definition{
			Table:      "users",
			Columns:    []string{"id", "username", "email", "password_hash"},
			Updatable:  []string{"username", "email", "password_hash"},
			OrderBy:    "username",
			Timestamps: true,
		}),
	}
}

// GetByUsernameOrEmail returns the first user matching either the
// username or the email. Nil filters are skipped. Returns (nil, nil)
// when no user matches.
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.User, error) {
	const query = `
		SELECT * FROM users
		WHERE ($1::VARCHAR IS NOT NULL AND username = $1)
		   OR ($2::VARCHAR IS NOT NULL AND email = $2)
		LIMIT 1
	`

	var user models.User
	err := r.DB().GetContext(ctx, &user, query, username, email)

	logger.Log.Infow("query",
		"table", "users",
		"statement", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeerr.Translate(err)
	}
	return &user, nil
}
