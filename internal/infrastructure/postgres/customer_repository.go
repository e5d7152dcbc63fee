package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const upsertCustomerSQL = `
	INSERT INTO customers (customer_number, name, address, zip_code, city, country, customer_group)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (customer_number) DO UPDATE SET
		name           = EXCLUDED.name,
		address        = EXCLUDED.address,
		zip_code       = EXCLUDED.zip_code,
		city           = EXCLUDED.city,
		country        = EXCLUDED.country,
		customer_group = EXCLUDED.customer_group`

// Upsert inserta o reemplaza todos los campos no clave, en una sola transacción.
func (r *CustomerRepo) Upsert(ctx context.Context, customers []*entity.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		b := &pgx.Batch{}
		for _, c := range customers {
			b.Queue(upsertCustomerSQL,
				c.CustomerNumber,
				nullIfEmpty(c.Name), nullIfEmpty(c.Address), nullIfEmpty(c.ZipCode),
				nullIfEmpty(c.City), nullIfEmpty(c.Country), nullIfEmpty(c.CustomerGroup),
			)
		}
		return sendBatch(ctx, tx, b, "upsert customer")
	})
}

// Count número de clientes registrados.
func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}
