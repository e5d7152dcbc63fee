package salesfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// decimalCodeRe código numérico, opcionalmente con parte decimal ("9005.0").
var decimalCodeRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// CanonicalArticleID normaliza un código de artículo al formato "E" + 5 dígitos.
//
//	"E9005.0" -> "E09005"
//	"42"      -> "E00042"
//	"AB12"    -> "EAB12"  (no numérico: "E" + resto sin relleno)
//
// Es idempotente: un código ya canónico se devuelve igual.
func CanonicalArticleID(raw string) string {
	s := strings.TrimSpace(raw)
	if s != "" && (s[0] == 'E' || s[0] == 'e') {
		s = strings.TrimSpace(s[1:])
	}
	if decimalCodeRe.MatchString(s) {
		intPart, _, _ := strings.Cut(s, ".")
		if n, err := strconv.ParseUint(intPart, 10, 64); err == nil {
			return fmt.Sprintf("E%05d", n)
		}
	}
	return "E" + s
}

// CleanArticleName conserva el texto a partir de la primera aparición (sin distinguir
// mayúsculas) de marker; si no aparece, devuelve el nombre sin cambios.
// Es idempotente.
func CleanArticleName(name, marker string) string {
	if marker == "" {
		return name
	}
	if i := indexFold(name, marker); i >= 0 {
		return name[i:]
	}
	return name
}

// indexFold busca substr en s sin distinguir mayúsculas, devolviendo el offset en bytes de s.
// Compara runa a runa para no depender de que el plegado conserve longitudes.
func indexFold(s, substr string) int {
	n := utf8.RuneCountInString(substr)
	for i := range s {
		j, count := i, 0
		for j < len(s) && count < n {
			_, size := utf8.DecodeRuneInString(s[j:])
			j += size
			count++
		}
		if count < n {
			return -1
		}
		if strings.EqualFold(s[i:j], substr) {
			return i
		}
	}
	return -1
}

// ParseNumber interpreta una celda como número. Celdas vacías o no numéricas
// devuelven ok=false en lugar de error.
func ParseNumber(c Cell) (decimal.Decimal, bool) {
	s := c.String()
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Normalizer convierte una línea de artículo en SalesRecord según un Layout.
type Normalizer struct {
	layout     Layout
	nameMarker string
}

// NewNormalizer construye el normalizador.
func NewNormalizer(layout Layout, nameMarker string) Normalizer {
	return Normalizer{layout: layout, nameMarker: nameMarker}
}

// Normalize extrae los campos de la fila. Nunca falla: una fila inutilizable se
// devuelve como descarte con su motivo.
func (n Normalizer) Normalize(index int, row Row, customer string, period time.Time) RowOutcome {
	if len(row) < n.layout.minWidth() {
		return skip(index, SkipShortRow)
	}
	qty, ok := ParseNumber(row.Cell(n.layout.Quantity))
	if !ok {
		return skip(index, SkipMissingQuantity)
	}
	if qty.IsZero() {
		return skip(index, SkipZeroQuantity)
	}
	// TB y venta ausentes valen 0, cada uno por separado.
	tb, _ := ParseNumber(row.Cell(n.layout.TBAmount))
	sales, _ := ParseNumber(row.Cell(n.layout.SalesAmount))

	rawName, _ := row.Cell(n.layout.ArticleName).Raw()
	return RowOutcome{
		Index: index,
		Kind:  OutcomeRecord,
		Record: &entity.SalesRecord{
			Date:           period,
			CustomerNumber: customer,
			ArticleID:      CanonicalArticleID(row.Cell(n.layout.ArticleCode).String()),
			ArticleName:    CleanArticleName(strings.TrimSpace(rawName), n.nameMarker),
			Quantity:       qty,
			TBAmount:       tb,
			SalesAmount:    sales,
		},
	}
}
