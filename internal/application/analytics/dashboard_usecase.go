// Package analytics contiene los casos de uso de lectura del tablero de ventas:
// tabla desnormalizada con filtros, KPIs, agrupaciones, conteo de clientes y borrado.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

// DashboardUseCase lee el modelo ventas + clientes y lo filtra en memoria.
type DashboardUseCase struct {
	sales     repository.SalesRepository
	customers repository.CustomerRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(sales repository.SalesRepository, customers repository.CustomerRepository) *DashboardUseCase {
	return &DashboardUseCase{sales: sales, customers: customers}
}

// Rows todas las filas que cumplen el filtro.
func (uc *DashboardUseCase) Rows(ctx context.Context, req dto.SalesFilterRequest) ([]entity.SalesRow, Filter, error) {
	f, err := ParseFilter(req)
	if err != nil {
		return nil, Filter{}, err
	}
	rows, err := uc.sales.ReadAll(ctx)
	if err != nil {
		return nil, Filter{}, fmt.Errorf("leer ventas: %w", err)
	}
	return f.Apply(rows), f, nil
}

// List página de la tabla filtrada.
func (uc *DashboardUseCase) List(ctx context.Context, req dto.SalesFilterRequest, page dto.PageRequest) (*dto.SalesListResponse, error) {
	page.DefaultPage()
	rows, _, err := uc.Rows(ctx, req)
	if err != nil {
		return nil, err
	}
	total := len(rows)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	items := make([]dto.SalesRowDTO, 0, end-start)
	for _, r := range rows[start:end] {
		items = append(items, ToSalesRowDTO(r))
	}
	return &dto.SalesListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Summary KPIs y agrupaciones de la selección.
func (uc *DashboardUseCase) Summary(ctx context.Context, req dto.SalesFilterRequest) (*dto.SalesSummaryDTO, error) {
	rows, _, err := uc.Rows(ctx, req)
	if err != nil {
		return nil, err
	}
	return Summarize(rows), nil
}

// CustomerCount número de clientes del registro.
func (uc *DashboardUseCase) CustomerCount(ctx context.Context) (int, error) {
	n, err := uc.customers.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("contar clientes: %w", err)
	}
	return n, nil
}

// ClearAll borra ventas y clientes.
func (uc *DashboardUseCase) ClearAll(ctx context.Context) error {
	return uc.sales.ClearAll(ctx)
}

// ToSalesRowDTO mapea la fila de lectura al DTO HTTP.
func ToSalesRowDTO(r entity.SalesRow) dto.SalesRowDTO {
	return dto.SalesRowDTO{
		ID:             r.ID,
		Date:           r.DateString(),
		CustomerNumber: r.CustomerNumber,
		CustomerName:   r.CustomerName,
		Country:        r.Country,
		CustomerGroup:  r.CustomerGroup,
		City:           r.City,
		ArticleID:      r.ArticleID,
		ArticleName:    r.ArticleName,
		Quantity:       r.Quantity,
		TBAmount:       r.TBAmount,
		SalesAmount:    r.SalesAmount,
		SourceFile:     r.SourceFile,
		ImportID:       r.ImportID,
	}
}
