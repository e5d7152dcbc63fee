package ports

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// SalesReport datos de un informe exportable de la selección del tablero.
type SalesReport struct {
	Title       string
	Scope       string // criterios de filtro legibles
	GeneratedAt time.Time
	Summary     *dto.SalesSummaryDTO
	Rows        []entity.SalesRow
}

// ReportRenderer convierte el informe en un documento (PDF, XML, ...).
type ReportRenderer interface {
	Render(ctx context.Context, report *SalesReport) ([]byte, error)
	ContentType() string
}
