package repository

import (
	"context"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// SalesRepository define el puerto de persistencia para las líneas de venta.
type SalesRepository interface {
	// Append etiqueta cada registro con sourceFile y los agrega. No hay restricción de
	// unicidad: reimportar el mismo archivo duplica filas. Lista vacía es no-op.
	Append(ctx context.Context, records []*entity.SalesRecord, sourceFile string) error

	// ReadAll devuelve las ventas con LEFT JOIN a clientes, ordenadas por fecha e id.
	ReadAll(ctx context.Context) ([]entity.SalesRow, error)

	// ClearAll elimina todas las ventas y todos los clientes (irreversible).
	ClearAll(ctx context.Context) error
}
