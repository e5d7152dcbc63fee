package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de la fecha de reporte (período) en todo el sistema.
const DateLayout = "2006-01-02"

// SalesRecord línea de venta extraída de un archivo de estadística de ventas.
//
// Invariantes:
//   - Quantity nunca es cero (las filas con cantidad cero o ausente se descartan al parsear).
//   - ArticleID tiene forma canónica "E" + 5 dígitos, o "E" + código crudo si no es numérico.
//   - Date es el período del archivo, no una fecha de la fila.
type SalesRecord struct {
	ID             int64
	Date           time.Time
	CustomerNumber string // FK blanda: el cliente puede no existir todavía
	ArticleID      string
	ArticleName    string
	Quantity       decimal.Decimal
	TBAmount       decimal.Decimal // contribución (TB i kr)
	SalesAmount    decimal.Decimal // venta total sin IVA
	SourceFile     string
	ImportID       string
	ImportedAt     time.Time
}

// DateString devuelve el período en formato YYYY-MM-DD.
func (r *SalesRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// SalesRow modelo de lectura: venta + atributos del cliente (LEFT JOIN).
// Los campos de cliente son nil cuando el cliente no está en el registro.
type SalesRow struct {
	SalesRecord
	CustomerName  *string
	Country       *string
	CustomerGroup *string
	City          *string
}
