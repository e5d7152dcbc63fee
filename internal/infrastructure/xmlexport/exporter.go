// Package xmlexport serializa la selección del tablero como documento XML (etree).
package xmlexport

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
)

var _ ports.ReportRenderer = (*Exporter)(nil)

// Exporter implementa ports.ReportRenderer.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ContentType tipo MIME del documento.
func (e *Exporter) ContentType() string { return "application/xml" }

// Render produce:
//
//	<SalesReport generatedAt="..." scope="...">
//	  <Summary records=".." totalSales=".." totalTB=".." marginPct=".." totalQuantity=".."/>
//	  <Groups dimension="country"><Group key=".." sales=".." tb=".." quantity="..">label</Group></Groups>
//	  <Sales><Sale id=".." date=".."> <Customer number=".." .../> <Article id="..">name</Article> ... </Sale></Sales>
//	</SalesReport>
func (e *Exporter) Render(_ context.Context, r *ports.SalesReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("SalesReport")
	root.CreateAttr("title", r.Title)
	root.CreateAttr("scope", r.Scope)
	root.CreateAttr("generatedAt", r.GeneratedAt.UTC().Format(time.RFC3339))

	if r.Summary != nil {
		k := r.Summary.KPI
		sum := root.CreateElement("Summary")
		sum.CreateAttr("records", strconv.Itoa(k.Records))
		sum.CreateAttr("totalSales", k.TotalSales.StringFixed(2))
		sum.CreateAttr("totalTB", k.TotalTB.StringFixed(2))
		sum.CreateAttr("marginPct", k.MarginPct.StringFixed(1))
		sum.CreateAttr("totalQuantity", k.TotalQty.String())
		if k.PeriodStart != "" {
			sum.CreateAttr("periodStart", k.PeriodStart)
			sum.CreateAttr("periodEnd", k.PeriodEnd)
		}
		addGroups(root, "country", r.Summary.ByCountry)
		addGroups(root, "customer_group", r.Summary.ByCustomerGroup)
		addGroups(root, "article", r.Summary.ArticlesBySales)
	}

	sales := root.CreateElement("Sales")
	for _, row := range r.Rows {
		s := sales.CreateElement("Sale")
		s.CreateAttr("id", strconv.FormatInt(row.ID, 10))
		s.CreateAttr("date", row.DateString())
		if row.SourceFile != "" {
			s.CreateAttr("sourceFile", row.SourceFile)
		}

		c := s.CreateElement("Customer")
		c.CreateAttr("number", row.CustomerNumber)
		optAttr(c, "name", row.CustomerName)
		optAttr(c, "country", row.Country)
		optAttr(c, "group", row.CustomerGroup)
		optAttr(c, "city", row.City)

		a := s.CreateElement("Article")
		a.CreateAttr("id", row.ArticleID)
		a.SetText(row.ArticleName)

		s.CreateElement("Quantity").SetText(row.Quantity.String())
		s.CreateElement("TBAmount").SetText(row.TBAmount.StringFixed(2))
		s.CreateElement("SalesAmount").SetText(row.SalesAmount.StringFixed(2))
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xml: serializar informe: %w", err)
	}
	return out.Bytes(), nil
}

func addGroups(parent *etree.Element, dimension string, groups []dto.GroupTotalDTO) {
	g := parent.CreateElement("Groups")
	g.CreateAttr("dimension", dimension)
	for _, it := range groups {
		el := g.CreateElement("Group")
		el.CreateAttr("key", it.Key)
		el.CreateAttr("sales", it.Sales.StringFixed(2))
		el.CreateAttr("tb", it.TB.StringFixed(2))
		el.CreateAttr("quantity", it.Quantity.String())
		el.SetText(it.Label)
	}
}

// optAttr omite el atributo cuando el cliente no está en el registro.
func optAttr(el *etree.Element, name string, v *string) {
	if v != nil {
		el.CreateAttr(name, *v)
	}
}
