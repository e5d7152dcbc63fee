package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implementación de SettingRepository.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// Get obtiene el valor de una clave; ok=false si no existe.
func (r *SettingRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v *string
	err := r.q.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get setting: %w", err)
	}
	if v == nil {
		return "", true, nil
	}
	return *v, true, nil
}

// Save último en escribir gana.
func (r *SettingRepo) Save(ctx context.Context, key, value string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value)
	if err != nil {
		return fmt.Errorf("save setting: %w", err)
	}
	return nil
}

// Delete elimina la clave.
func (r *SettingRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}
