package salesfile

import (
	"strings"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// State estado de la máquina de clasificación de filas.
type State int

const (
	SeekingHeader    State = iota // buscando la fila "Kundnr."
	AwaitingCustomer              // cabecera encontrada, aún sin cliente activo
	InCustomerBlock               // dentro del bloque de un cliente
)

func (s State) String() string {
	switch s {
	case SeekingHeader:
		return "seeking_header"
	case AwaitingCustomer:
		return "awaiting_customer"
	case InCustomerBlock:
		return "in_customer_block"
	default:
		return "unknown"
	}
}

// OutcomeKind resultado de procesar una fila.
type OutcomeKind int

const (
	OutcomeSkipped OutcomeKind = iota
	OutcomeCustomerHeader
	OutcomeArticleLine // clasificada como artículo, pendiente de normalizar
	OutcomeRecord
)

// SkipReason motivo por el que una fila no produce registro.
type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipBeforeHeader    SkipReason = "before_header"
	SkipHeaderMarker    SkipReason = "header_marker"
	SkipRepeatedHeader  SkipReason = "repeated_header"
	SkipTotalRow        SkipReason = "total_row"
	SkipNoise           SkipReason = "noise"
	SkipShortRow        SkipReason = "short_row"
	SkipMissingQuantity SkipReason = "missing_quantity"
	SkipZeroQuantity    SkipReason = "zero_quantity"
)

// RowOutcome resultado por fila (suma de: cabecera de cliente, registro o descarte).
type RowOutcome struct {
	Index    int
	Kind     OutcomeKind
	Customer string              // OutcomeCustomerHeader / OutcomeArticleLine
	Record   *entity.SalesRecord // solo OutcomeRecord
	Reason   SkipReason          // solo OutcomeSkipped
}

func skip(index int, reason SkipReason) RowOutcome {
	return RowOutcome{Index: index, Kind: OutcomeSkipped, Reason: reason}
}

// Classifier recorre la cuadrícula de arriba a abajo manteniendo el cliente activo.
// No tiene estado terminal: termina con la cuadrícula.
type Classifier struct {
	layout   Layout
	markers  Markers
	state    State
	customer string
}

// NewClassifier construye la máquina en estado SeekingHeader.
func NewClassifier(layout Layout, markers Markers) *Classifier {
	return &Classifier{layout: layout, markers: markers, state: SeekingHeader}
}

// State estado actual.
func (c *Classifier) State() State { return c.state }

// Customer cliente activo ("" si no hay).
func (c *Classifier) Customer() string { return c.customer }

// Classify clasifica la fila index. Las líneas de artículo se devuelven como
// OutcomeArticleLine con el cliente activo; el resto queda resuelto aquí.
func (c *Classifier) Classify(index int, row Row) RowOutcome {
	col0 := row.Cell(c.layout.CustomerNumber)
	col1 := row.Cell(c.layout.ArticleCode)

	if c.state == SeekingHeader {
		if col0.String() == c.markers.CustomerHeader {
			c.state = AwaitingCustomer
			return skip(index, SkipHeaderMarker)
		}
		return skip(index, SkipBeforeHeader)
	}

	// La detección de cliente exige la segunda columna vacía.
	if isASCIIDigits(col0.String()) && col1.IsEmpty() {
		c.customer = col0.String()
		c.state = InCustomerBlock
		return RowOutcome{Index: index, Kind: OutcomeCustomerHeader, Customer: c.customer}
	}
	if c.isArticleHeader(col1.String()) {
		return skip(index, SkipRepeatedHeader)
	}
	if c.markers.TotalRow != "" && indexFold(col1.String(), c.markers.TotalRow) >= 0 {
		return skip(index, SkipTotalRow)
	}
	if c.customer != "" && !col1.IsEmpty() {
		return RowOutcome{Index: index, Kind: OutcomeArticleLine, Customer: c.customer}
	}
	return skip(index, SkipNoise)
}

func (c *Classifier) isArticleHeader(s string) bool {
	if s == "" || c.markers.ArticleHeader == "" {
		return false
	}
	want := strings.TrimSuffix(c.markers.ArticleHeader, ".")
	return strings.EqualFold(strings.TrimSuffix(s, "."), want)
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
