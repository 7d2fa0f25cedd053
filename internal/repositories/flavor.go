package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/acmeweb/acme-api/internal/models"
	"github.com/acmeweb/acme-api/internal/resource"
)

// FlavorRepository handles the flavors table.
type FlavorRepository struct {
	*resource.Repository[models.Flavor]
}

func NewFlavorRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FlavorRepository {
	return &FlavorRepository{
		Repository: resource.New[models.Flavor](db, txGetter, resource.Definition{
			Table:      "flavors",
			Columns:    []string{"id", "name", "is_favorite"},
			Updatable:  []string{"name", "is_favorite"},
			OrderBy:    "name",
			Timestamps: true,
		}),
	}
}
