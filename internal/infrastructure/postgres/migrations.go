package postgres

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_number TEXT PRIMARY KEY,
		name            TEXT,
		address         TEXT,
		zip_code        TEXT,
		city            TEXT,
		country         TEXT,
		customer_group  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id              BIGSERIAL PRIMARY KEY,
		date            DATE NOT NULL,
		customer_number TEXT NOT NULL,
		article_id      TEXT NOT NULL,
		article_name    TEXT,
		quantity        NUMERIC(18,4) NOT NULL,
		tb_amount       NUMERIC(18,2) NOT NULL DEFAULT 0,
		sales_amount    NUMERIC(18,2) NOT NULL DEFAULT 0,
		source_file     TEXT,
		import_id       UUID,
		imported_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales (customer_number)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT
	)`,
}

// Migrate crea el esquema si no existe.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range migrations {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración postgres: %w", err)
		}
	}
	return nil
}
