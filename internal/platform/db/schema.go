package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cash_movements (
		id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		type TEXT NOT NULL,
		date TEXT NOT NULL,
		category TEXT,
		reason TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		cost DOUBLE PRECISION NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		stock INTEGER NOT NULL,
		cost_details TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL,
		product_name TEXT NOT NULL,
		customer_name TEXT,
		quantity INTEGER NOT NULL,
		sale_date TEXT NOT NULL,
		total_revenue DOUBLE PRECISION NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		total_profit DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS marketplace_orders (
		id BIGSERIAL PRIMARY KEY,
		order_data TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("platform/db: ensure schema: %w", err)
		}
	}
	return nil
}
