package schema

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/acmeweb/acme-api/internal/logger"
)

// Seed loads a small sample data set into a freshly initialized
// schema, for manual curl testing and local development.
func Seed(ctx context.Context, db *sqlx.DB) error {
	seedUsers := []struct {
		username, email, password string
	}{
		{"moe", "moe@example.com", "moe_pw"},
		{"lucy", "lucy@example.com", "lucy_pw"},
		{"ethyl", "ethyl@example.com", "ethyl_pw"},
	}

	userIDs := make([]uuid.UUID, 0, len(seedUsers))
	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		id := uuid.New()
		if _, err := db.ExecContext(ctx,
			`INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, $4)`,
			id, u.username, u.email, string(hash)); err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
		userIDs = append(userIDs, id)
	}

	productIDs := make([]uuid.UUID, 0, 3)
	for _, name := range []string{"notebook", "pencil", "backpack"} {
		id := uuid.New()
		if _, err := db.ExecContext(ctx,
			`INSERT INTO products (id, name, price) VALUES ($1, $2, $3)`,
			id, name, 9.99); err != nil {
			return fmt.Errorf("seed product %s: %w", name, err)
		}
		productIDs = append(productIDs, id)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, product_id) VALUES ($1, $2, $3)`,
		uuid.New(), userIDs[0], productIDs[0]); err != nil {
		return fmt.Errorf("seed favorite: %w", err)
	}

	itemID := uuid.New()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO items (id, name, description) VALUES ($1, $2, $3)`,
		itemID, "espresso machine", "entry level espresso machine"); err != nil {
		return fmt.Errorf("seed item: %w", err)
	}

	reviewID := uuid.New()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO reviews (id, user_id, item_id, review_text, rating) VALUES ($1, $2, $3, $4, $5)`,
		reviewID, userIDs[0], itemID, "great value", 4); err != nil {
		return fmt.Errorf("seed review: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO comments (id, review_id, user_id, comment_text) VALUES ($1, $2, $3, $4)`,
		uuid.New(), reviewID, userIDs[1], "agreed, mine still works"); err != nil {
		return fmt.Errorf("seed comment: %w", err)
	}

	customerID := uuid.New()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO customers (id, name, email) VALUES ($1, $2, $3)`,
		customerID, "Larry", "larry@example.com"); err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}

	restaurantID := uuid.New()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO restaurants (id, name, location) VALUES ($1, $2, $3)`,
		restaurantID, "Pasta Palace", "Main Street"); err != nil {
		return fmt.Errorf("seed restaurant: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO reservations (id, customer_id, restaurant_id, reservation_date, party_count)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), customerID, restaurantID, time.Now().Add(48*time.Hour), 2); err != nil {
		return fmt.Errorf("seed reservation: %w", err)
	}

	departmentID := uuid.New()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO departments (id, name) VALUES ($1, $2)`,
		departmentID, "Engineering"); err != nil {
		return fmt.Errorf("seed department: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO employees (id, name, department_id) VALUES ($1, $2, $3)`,
		uuid.New(), "Grace", departmentID); err != nil {
		return fmt.Errorf("seed employee: %w", err)
	}

	for _, f := range []struct {
		name     string
		favorite bool
	}{{"vanilla", false}, {"pistachio", true}} {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO flavors (id, name, is_favorite) VALUES ($1, $2, $3)`,
			uuid.New(), f.name, f.favorite); err != nil {
			return fmt.Errorf("seed flavor %s: %w", f.name, err)
		}
	}

	logger.Log.Infow("sample data seeded")
	return nil
}
