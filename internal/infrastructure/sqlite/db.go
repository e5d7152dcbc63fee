// Package sqlite implementa los repositorios sobre un archivo SQLite local
// (modernc.org/sqlite, sin cgo). Es el almacenamiento por defecto.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// migrations crea el esquema. La relación ventas -> clientes es blanda (sin FK):
// se pueden importar ventas antes que el registro de clientes.
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
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		date            TEXT NOT NULL,
		customer_number TEXT NOT NULL,
		article_id      TEXT NOT NULL,
		article_name    TEXT,
		quantity        REAL NOT NULL,
		tb_amount       REAL NOT NULL DEFAULT 0,
		sales_amount    REAL NOT NULL DEFAULT 0,
		source_file     TEXT,
		import_id       TEXT,
		imported_at     TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales (customer_number)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT
	)`,
}

// Open abre (o crea) la base en path y aplica las migraciones.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un solo escritor: el pipeline importa archivo por archivo.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate ejecuta las sentencias CREATE ... IF NOT EXISTS.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migración sqlite: %w", err)
		}
	}
	return nil
}

// withTx ejecuta fn en una transacción; Commit si fn no falla, Rollback en otro caso.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
