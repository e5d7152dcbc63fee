package repository

import (
	"context"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para el registro de clientes.
type CustomerRepository interface {
	// Upsert inserta o reemplaza por completo los campos no clave por customer_number.
	// Todo el lote va en una transacción; lista vacía es no-op.
	Upsert(ctx context.Context, customers []*entity.Customer) error
	Count(ctx context.Context) (int, error)
}
