// Package pdf genera el informe de ventas en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + criterios     │  fecha de generación       │
//	│  KPIs: Ventas | TB | Margen % | Cantidad                     │
//	│  TOP CLIENTES POR TB / VENTAS POR PAÍS                       │
//	│  DETALLE: Fecha | Cliente | Artículo | Cant | TB | Venta     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

var _ ports.ReportRenderer = (*MarotoPDFGenerator)(nil)

// MaxDetailRows tope de filas de detalle; el resto se resume en una nota.
const MaxDetailRows = 2000

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoPDFGenerator implementa ports.ReportRenderer.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// ContentType tipo MIME del documento.
func (g *MarotoPDFGenerator) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(_ context.Context, r *ports.SalesReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(r.Summary.KPI))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Top clientes por TB"))
	m.AddRows(groupRows(r.Summary.TopCustomersByTB)...)
	m.AddRows(sectionTitle("Ventas por país"))
	m.AddRows(groupRows(r.Summary.ByCountry)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("Detalle"))
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRows(r.Rows)...)
	if n := len(r.Rows) - MaxDetailRows; n > 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("… %d filas más no incluidas", n), props.Text{Size: 7, Color: colorGray, Top: 1}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *ports.SalesReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(r.Scope, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(periodLabel(r.Summary.KPI), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

func periodLabel(k dto.KPIDTO) string {
	if k.PeriodStart == "" {
		return "Sin datos"
	}
	if k.PeriodStart == k.PeriodEnd {
		return k.PeriodStart
	}
	return k.PeriodStart + " – " + k.PeriodEnd
}

func kpiRow(k dto.KPIDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		cell("Ventas (exkl moms)", money(k.TotalSales)+" kr"),
		cell("TB", money(k.TotalTB)+" kr"),
		cell("Margen TB", k.MarginPct.StringFixed(1)+"%"),
		cell("Cantidad", k.TotalQty.String()),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func groupRows(groups []dto.GroupTotalDTO) []core.Row {
	if len(groups) == 0 {
		return []core.Row{row.New(5).Add(col.New(12).Add(text.New("Sin datos", props.Text{Size: 8, Color: colorGray})))}
	}
	out := make([]core.Row, 0, len(groups))
	for _, g := range groups {
		out = append(out, row.New(5).Add(
			col.New(6).Add(text.New(g.Label, props.Text{Size: 8, Left: 2})),
			col.New(3).Add(text.New("TB "+money(g.TB), props.Text{Size: 8, Align: align.Right})),
			col.New(3).Add(text.New(money(g.Sales)+" kr", props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return out
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Cliente", 3, align.Left),
		h("Artículo", 3, align.Left),
		h("Cant.", 1, align.Right),
		h("TB", 1, align.Right),
		h("Venta", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func detailRows(rows []entity.SalesRow) []core.Row {
	n := len(rows)
	if n > MaxDetailRows {
		n = MaxDetailRows
	}
	out := make([]core.Row, 0, n)
	for i := 0; i < n; i++ {
		r := rows[i]
		cell := func(v string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(v, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		out = append(out, row.New(6).Add(
			cell(r.DateString(), 2, align.Left),
			cell(analytics.CustomerLabel(r), 3, align.Left),
			cell(analytics.ArticleLabel(r), 3, align.Left),
			cell(r.Quantity.String(), 1, align.Right),
			cell(money(r.TBAmount), 1, align.Right),
			cell(money(r.SalesAmount), 2, align.Right),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separador de miles por espacio y dos decimales (estilo sueco).
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := false
	if s[0] == '-' {
		neg, s = true, s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	var b []byte
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b = append(b, ' ')
		}
		b = append(b, intPart[i])
	}
	out := string(b) + frac
	if neg {
		out = "-" + out
	}
	return out
}
