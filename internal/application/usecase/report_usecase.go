package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
)

// ReportTitle título de los informes exportados.
const ReportTitle = "Försäljningsstatistik"

// ReportUseCase exporta la selección filtrada del tablero con el renderer indicado.
type ReportUseCase struct {
	dashboard *analytics.DashboardUseCase
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *analytics.DashboardUseCase) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, now: time.Now}
}

// Export filtra y renderiza. Devuelve el documento y su tipo MIME.
func (uc *ReportUseCase) Export(ctx context.Context, req dto.SalesFilterRequest, r ports.ReportRenderer) ([]byte, string, error) {
	rows, filter, err := uc.dashboard.Rows(ctx, req)
	if err != nil {
		return nil, "", err
	}
	report := &ports.SalesReport{
		Title:       ReportTitle,
		Scope:       filter.Describe(),
		GeneratedAt: uc.now(),
		Summary:     analytics.Summarize(rows),
		Rows:        rows,
	}
	out, err := r.Render(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("exportar informe: %w", err)
	}
	return out, r.ContentType(), nil
}
