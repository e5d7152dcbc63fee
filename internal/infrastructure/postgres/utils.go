package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUndefinedTable verifica si un error es 42P01 (tabla inexistente), p. ej. antes de migrar.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	return strings.Contains(err.Error(), "42P01")
}

// nullIfEmpty guarda NULL para atributos de cliente vacíos.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
