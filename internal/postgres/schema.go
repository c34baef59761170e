package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dua koleksi dokumen: menu_items dan orders (items disimpan sebagai JSON text).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id          TEXT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description VARCHAR(1000) NOT NULL DEFAULT '',
		price       DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		category    VARCHAR(100) NOT NULL,
		image       TEXT NOT NULL,
		available   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id           TEXT PRIMARY KEY,
		table_id     VARCHAR(50) NOT NULL,
		status       VARCHAR(50) NOT NULL,
		total_amount DOUBLE PRECISION NOT NULL,
		items_json   VARCHAR(10000) NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_status_idx ON orders(status)`,
}

func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
