// Package schema owns the table definitions for every module and the
// drop-and-recreate initializer. Init is destructive and is only ever
// invoked by the migrate command, never on server startup.
package schema

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/acmeweb/acme-api/internal/logger"
)

// Table pairs a table name with its CREATE statement. The DDL carries
// the column types and every NOT NULL, UNIQUE, CHECK, and foreign-key
// constraint; nothing is added outside of it.
type Table struct {
	Name string
	DDL  string
}

// Tables returns all tables in dependency order: tables with no
// foreign keys first, so that creating forward and dropping in
// reverse always satisfies the references.
func Tables() []Table {
	return []Table{
		{
			Name: "users",
			DDL: `CREATE TABLE users (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				username VARCHAR(50) NOT NULL UNIQUE,
				email VARCHAR(100) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Name: "products",
			DDL: `CREATE TABLE products (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(200) NOT NULL,
				description TEXT,
				price NUMERIC(10,2) CHECK (price >= 0),
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Name: "favorites",
			DDL: `CREATE TABLE favorites (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				user_id UUID REFERENCES users(id) NOT NULL,
				product_id UUID REFERENCES products(id) NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				CONSTRAINT unique_user_id_and_product_id UNIQUE (user_id, product_id)
			)`,
		},
		{
			Name: "items",
			DDL: `CREATE TABLE items (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(100) NOT NULL,
				description TEXT,
				average_rating NUMERIC NOT NULL DEFAULT 0
			)`,
		},
		{
			Name: "reviews",
			DDL: `CREATE TABLE reviews (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				user_id UUID REFERENCES users(id) NOT NULL,
				item_id UUID REFERENCES items(id) NOT NULL,
				review_text TEXT,
				rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
				CONSTRAINT unique_user_item UNIQUE (user_id, item_id)
			)`,
		},
		{
			Name: "comments",
			DDL: `CREATE TABLE comments (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				review_id UUID REFERENCES reviews(id) NOT NULL,
				user_id UUID REFERENCES users(id) NOT NULL,
				comment_text TEXT,
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Name: "customers",
			DDL: `CREATE TABLE customers (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(100) NOT NULL,
				email VARCHAR(100) UNIQUE,
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Name: "restaurants",
			DDL: `CREATE TABLE restaurants (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(100) NOT NULL,
				location VARCHAR(255),
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Name: "reservations",
			DDL: `CREATE TABLE reservations (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				customer_id UUID REFERENCES customers(id) NOT NULL,
				restaurant_id UUID REFERENCES restaurants(id) NOT NULL,
				reservation_date TIMESTAMP NOT NULL,
				party_count INTEGER NOT NULL CHECK (party_count > 0),
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Name: "departments",
			DDL: `CREATE TABLE departments (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(100) NOT NULL UNIQUE,
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Name: "employees",
			DDL: `CREATE TABLE employees (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(100) NOT NULL,
				department_id UUID REFERENCES departments(id),
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Name: "flavors",
			DDL: `CREATE TABLE flavors (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(100) NOT NULL,
				is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		},
	}
}

// Init drops every table in reverse dependency order and recreates
// them forward. Safe to call repeatedly; always yields an empty,
// structurally correct schema.
func Init(ctx context.Context, db *sqlx.DB) error {
	tables := Tables()

	for i := len(tables) - 1; i >= 0; i-- {
		stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s", tables[i].Name)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("drop %s: %w", tables[i].Name, err)
		}
	}

	for _, tbl := range tables {
		if _, err := db.ExecContext(ctx, tbl.DDL); err != nil {
			return fmt.Errorf("create %s: %w", tbl.Name, err)
		}
		logger.Log.Infow("table created", "table", tbl.Name)
	}

	return nil
}
