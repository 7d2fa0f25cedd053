package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/acmeweb/acme-api/internal/storeerr"
)

func createProduct(t *testing.T, repo *ProductRepository, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := repo.Create(context.Background(), map[string]any{"id": id, "name": name})
	assert.NoError(t, err)
	return id
}

func TestFavoriteRepository_ListByUser(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserRepository(db, nil)
	products := NewProductRepository(db, nil)
	favorites := NewFavoriteRepository(db, nil)

	alice := createUser(t, users, "alice", "alice@example.com")
	bob := createUser(t, users, "bob", "bob@example.com")
	widget := createProduct(t, products, "widget")
	gadget := createProduct(t, products, "gadget")

	for _, productID := range []uuid.UUID{widget, gadget} {
		_, err := favorites.Create(ctx, map[string]any{
			"id": uuid.New(), "user_id": alice, "product_id": productID,
		})
		assert.NoError(t, err)
	}
	_, err := favorites.Create(ctx, map[string]any{
		"id": uuid.New(), "user_id": bob, "product_id": widget,
	})
	assert.NoError(t, err)

	aliceFavorites, err := favorites.ListByUser(ctx, alice)
	assert.NoError(t, err)
	assert.Len(t, aliceFavorites, 2)
	for _, f := range aliceFavorites {
		assert.Equal(t, alice, f.UserID)
	}

	// A user with no favorites gets an empty list
	noneFavorites, err := favorites.ListByUser(ctx, uuid.New())
	assert.NoError(t, err)
	assert.NotNil(t, noneFavorites)
	assert.Empty(t, noneFavorites)
}

func TestFavoriteRepository_DuplicatePair(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserRepository(db, nil)
	products := NewProductRepository(db, nil)
	favorites := NewFavoriteRepository(db, nil)

	alice := createUser(t, users, "alice", "alice@example.com")
	widget := createProduct(t, products, "widget")

	_, err := favorites.Create(ctx, map[string]any{
		"id": uuid.New(), "user_id": alice, "product_id": widget,
	})
	assert.NoError(t, err)

	// Same (user, product) pair again
	_, err = favorites.Create(ctx, map[string]any{
		"id": uuid.New(), "user_id": alice, "product_id": widget,
	})
	assert.ErrorIs(t, err, storeerr.ErrUniqueViolation)
}

func TestFavoriteRepository_OwnerScopedDestroy(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserRepository(db, nil)
	products := NewProductRepository(db, nil)
	favorites := NewFavoriteRepository(db, nil)

	alice := createUser(t, users, "alice", "alice@example.com")
	bob := createUser(t, users, "bob", "bob@example.com")
	widget := createProduct(t, products, "widget")

	favID := uuid.New()
	_, err := favorites.Create(ctx, map[string]any{
		"id": favID, "user_id": alice, "product_id": widget,
	})
	assert.NoError(t, err)

	// Bob cannot delete Alice's favorite
	rec, err := favorites.Destroy(ctx, favID, &bob)
	assert.NoError(t, err)
	assert.Nil(t, rec)

	remaining, err := favorites.ListByUser(ctx, alice)
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)

	// Alice can
	rec, err = favorites.Destroy(ctx, favID, &alice)
	assert.NoError(t, err)
	assert.NotNil(t, rec)
}
