package dto

import "github.com/shopspring/decimal"

// SalesFilterRequest filtros del tablero. Vacío = sin filtro.
type SalesFilterRequest struct {
	From         string `query:"from" json:"from"`                   // YYYY-MM-DD inclusive
	To           string `query:"to" json:"to"`                       // YYYY-MM-DD inclusive
	Country      string `query:"country" json:"country"`             // "Unknown" = sin país
	Group        string `query:"group" json:"group"`                 // "Unknown" = sin grupo
	CustomerType string `query:"customer_type" json:"customer_type"` // private | business
	Customer     string `query:"customer" json:"customer"`           // número de cliente
	ArticleID    string `query:"article_id" json:"article_id"`
}

// SalesRowDTO fila de la tabla desnormalizada venta + cliente.
type SalesRowDTO struct {
	ID             int64           `json:"id"`
	Date           string          `json:"date"`
	CustomerNumber string          `json:"customer_number"`
	CustomerName   *string         `json:"customer_name"`
	Country        *string         `json:"country"`
	CustomerGroup  *string         `json:"customer_group"`
	City           *string         `json:"city"`
	ArticleID      string          `json:"article_id"`
	ArticleName    string          `json:"article_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	TBAmount       decimal.Decimal `json:"tb_amount"`
	SalesAmount    decimal.Decimal `json:"sales_amount"`
	SourceFile     string          `json:"source_file"`
	ImportID       string          `json:"import_id,omitempty"`
}

// SalesListResponse página de ventas filtradas.
type SalesListResponse struct {
	Items []SalesRowDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}

// KPIDTO totales del conjunto filtrado. MarginPct = TB / ventas * 100 (0 si ventas <= 0).
type KPIDTO struct {
	Records     int             `json:"records"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalTB     decimal.Decimal `json:"total_tb"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
	TotalQty    decimal.Decimal `json:"total_quantity"`
	PeriodStart string          `json:"period_start,omitempty"`
	PeriodEnd   string          `json:"period_end,omitempty"`
}

// GroupTotalDTO agregado por una dimensión (país, grupo, cliente, artículo, fecha).
type GroupTotalDTO struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Sales    decimal.Decimal `json:"sales"`
	TB       decimal.Decimal `json:"tb"`
	Quantity decimal.Decimal `json:"quantity"`
}

// SalesSummaryDTO KPIs + agrupaciones del tablero.
type SalesSummaryDTO struct {
	KPI                KPIDTO          `json:"kpi"`
	ByCountry          []GroupTotalDTO `json:"by_country"`
	ByCustomerGroup    []GroupTotalDTO `json:"by_customer_group"`
	ByDate             []GroupTotalDTO `json:"by_date"`
	TopCustomersByTB   []GroupTotalDTO `json:"top_customers_by_tb"`
	ArticlesByQuantity []GroupTotalDTO `json:"articles_by_quantity"`
	ArticlesBySales    []GroupTotalDTO `json:"articles_by_sales"`
}

// CustomerCountResponse GET /api/customers/count.
type CustomerCountResponse struct {
	Count int `json:"count"`
}
