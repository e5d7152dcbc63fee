package salesfile

import (
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// DefaultProductMarker literal de producto que precede a la fecha en el nombre del archivo,
// ej. "Försäljningsstatistik Silent socks 250101-250131.xlsx".
const DefaultProductMarker = "Silent socks"

var rangeRe = regexp.MustCompile(`(\d{2})(\d{2})(\d{2})-(\d{2})(\d{2})(\d{2})`)

// PeriodExtractor deriva la fecha de reporte a partir del nombre del archivo.
type PeriodExtractor struct {
	markerRe *regexp.Regexp
	now      func() time.Time
}

// NewPeriodExtractor construye el extractor. marker vacío usa DefaultProductMarker;
// now nil usa time.Now.
func NewPeriodExtractor(marker string, now func() time.Time) *PeriodExtractor {
	if strings.TrimSpace(marker) == "" {
		marker = DefaultProductMarker
	}
	if now == nil {
		now = time.Now
	}
	words := strings.Fields(marker)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	pattern := `(?i)` + strings.Join(words, `\s+`) + `\s*(\d{2})(\d{2})(\d{2})`
	return &PeriodExtractor{markerRe: regexp.MustCompile(pattern), now: now}
}

// Extract aplica, en orden:
//  1. marcador de producto seguido de YYMMDD;
//  2. primer rango YYMMDD-YYMMDD en cualquier parte del nombre;
//  3. fecha de procesamiento.
//
// Un grupo de 6 dígitos que no es una fecha de calendario no satisface su regla.
func (p *PeriodExtractor) Extract(filename string) time.Time {
	for _, m := range p.markerRe.FindAllStringSubmatch(filename, -1) {
		if d, ok := yymmdd(m[1], m[2], m[3]); ok {
			return d
		}
	}
	for _, m := range rangeRe.FindAllStringSubmatch(filename, -1) {
		if d, ok := yymmdd(m[1], m[2], m[3]); ok {
			return d
		}
	}
	n := p.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// ExtractString igual que Extract pero en formato YYYY-MM-DD.
func (p *PeriodExtractor) ExtractString(filename string) string {
	return p.Extract(filename).Format(entity.DateLayout)
}

func yymmdd(yy, mm, dd string) (time.Time, bool) {
	t, err := time.Parse(entity.DateLayout, "20"+yy+"-"+mm+"-"+dd)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
