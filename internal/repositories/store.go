package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acmeweb/acme-api/internal/models"
	"github.com/acmeweb/acme-api/internal/resource"
)

// ProductRepository handles the products table.
type ProductRepository struct {
	*resource.Repository[models.Product]
}

func NewProductRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ProductRepository {
	return &ProductRepository{
		Repository: resource.New[models.Product](db, txGetter, resource.Definition{
			Table:      "products",
			Columns:    []string{"id", "name", "description", "price"},
			Updatable:  []string{"name", "description", "price"},
			OrderBy:    "name",
			Timestamps: true,
		}),
	}
}

// FavoriteRepository handles the favorites relationship table.
// Updates are not supported: a favorite is created and destroyed,
// never mutated.
type FavoriteRepository struct {
	*resource.Repository[models.Favorite]
}

func NewFavoriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FavoriteRepository {
	return &FavoriteRepository{
		Repository: resource.New[models.Favorite](db, txGetter, resource.Definition{
			Table:       "favorites",
			Columns:     []string{"id", "user_id", "product_id"},
			OrderBy:     "created_at",
			OwnerColumn: "user_id",
		}),
	}
}

// ListByUser returns all favorites belonging to the given user.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	return r.FetchBy(ctx, "user_id", userID)
}
