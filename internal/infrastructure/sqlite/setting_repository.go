package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implementación SQLite de SettingRepository.
type SettingRepo struct {
	db *sql.DB
}

// NewSettingRepository construye el adaptador.
func NewSettingRepository(db *sql.DB) *SettingRepo {
	return &SettingRepo{db: db}
}

// Get obtiene el valor de una clave.
func (r *SettingRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get setting: %w", err)
	}
	return v.String, true, nil
}

// Save guarda el valor; último en escribir gana.
func (r *SettingRepo) Save(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("save setting: %w", err)
	}
	return nil
}

// Delete elimina la clave (no falla si no existe).
func (r *SettingRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}
