package salesfile

import (
	"time"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// SalesParserOptions configuración del parser de estadística de ventas.
// Los valores cero usan LayoutV1, DefaultMarkers y DefaultProductMarker.
type SalesParserOptions struct {
	Layout        Layout
	Markers       Markers
	ProductMarker string
	Now           func() time.Time
}

// SalesParser convierte la cuadrícula jerárquica en registros planos.
type SalesParser struct {
	layout     Layout
	markers    Markers
	periods    *PeriodExtractor
	normalizer Normalizer
}

// NewSalesParser construye el parser.
func NewSalesParser(opts SalesParserOptions) *SalesParser {
	layout := opts.Layout
	if layout.Version == "" {
		layout = LayoutV1
	}
	markers := opts.Markers
	if markers == (Markers{}) {
		markers = DefaultMarkers
	}
	return &SalesParser{
		layout:     layout,
		markers:    markers,
		periods:    NewPeriodExtractor(opts.ProductMarker, opts.Now),
		normalizer: NewNormalizer(layout, markers.ArticleName),
	}
}

// SalesResult resultado de parsear un archivo de ventas.
type SalesResult struct {
	Period      time.Time
	HeaderFound bool
	Records     []*entity.SalesRecord
	Outcomes    []RowOutcome
}

// Skipped cuenta los descartes por motivo.
func (r *SalesResult) Skipped() map[SkipReason]int {
	out := make(map[SkipReason]int)
	for _, o := range r.Outcomes {
		if o.Kind == OutcomeSkipped {
			out[o.Reason]++
		}
	}
	return out
}

// Parse recorre la cuadrícula. Nunca devuelve error: sin fila de cabecera el resultado
// simplemente no tiene registros, y las filas defectuosas se descartan con su motivo.
func (p *SalesParser) Parse(g *Grid, filename string) *SalesResult {
	period := p.periods.Extract(filename)
	res := &SalesResult{Period: period}
	cls := NewClassifier(p.layout, p.markers)

	for i := 0; i < g.Len(); i++ {
		row := g.Row(i)
		out := cls.Classify(i, row)
		if out.Kind == OutcomeSkipped && out.Reason == SkipHeaderMarker {
			res.HeaderFound = true
		}
		if out.Kind == OutcomeArticleLine {
			out = p.normalizer.Normalize(i, row, out.Customer, period)
		}
		if out.Kind == OutcomeRecord {
			res.Records = append(res.Records, out.Record)
		}
		res.Outcomes = append(res.Outcomes, out)
	}
	return res
}
