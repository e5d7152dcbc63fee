package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación SQLite de CustomerRepository.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

const upsertCustomerSQL = `
	INSERT INTO customers (customer_number, name, address, zip_code, city, country, customer_group)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (customer_number) DO UPDATE SET
		name           = excluded.name,
		address        = excluded.address,
		zip_code       = excluded.zip_code,
		city           = excluded.city,
		country        = excluded.country,
		customer_group = excluded.customer_group`

// Upsert reemplaza todos los campos no clave en conflicto (no fusiona).
func (r *CustomerRepo) Upsert(ctx context.Context, customers []*entity.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertCustomerSQL)
		if err != nil {
			return fmt.Errorf("prepare upsert customer: %w", err)
		}
		defer stmt.Close()
		for _, c := range customers {
			_, err := stmt.ExecContext(ctx,
				c.CustomerNumber,
				nullIfEmpty(c.Name), nullIfEmpty(c.Address), nullIfEmpty(c.ZipCode),
				nullIfEmpty(c.City), nullIfEmpty(c.Country), nullIfEmpty(c.CustomerGroup),
			)
			if err != nil {
				return fmt.Errorf("upsert customer %s: %w", c.CustomerNumber, err)
			}
		}
		return nil
	})
}

// Count número de clientes en el registro.
func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}
