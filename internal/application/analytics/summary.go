package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

const topCustomersByTB = 10

var hundred = decimal.NewFromInt(100)

// CustomerLabel nombre del cliente si está en el registro; si no, su número.
func CustomerLabel(r entity.SalesRow) string {
	if r.CustomerName != nil && *r.CustomerName != "" {
		return *r.CustomerName
	}
	return r.CustomerNumber
}

// ArticleLabel "<id> - <nombre>".
func ArticleLabel(r entity.SalesRow) string {
	if r.ArticleName == "" {
		return r.ArticleID
	}
	return r.ArticleID + " - " + r.ArticleName
}

func optionalLabel(v *string) string {
	if v == nil {
		return UnknownValue
	}
	return *v
}

// ComputeKPI totales de ventas, TB, cantidad y margen.
func ComputeKPI(rows []entity.SalesRow) dto.KPIDTO {
	k := dto.KPIDTO{
		Records:    len(rows),
		TotalSales: decimal.Zero,
		TotalTB:    decimal.Zero,
		TotalQty:   decimal.Zero,
		MarginPct:  decimal.Zero,
	}
	for i, r := range rows {
		k.TotalSales = k.TotalSales.Add(r.SalesAmount)
		k.TotalTB = k.TotalTB.Add(r.TBAmount)
		k.TotalQty = k.TotalQty.Add(r.Quantity)
		d := r.DateString()
		if i == 0 || d < k.PeriodStart {
			k.PeriodStart = d
		}
		if d > k.PeriodEnd {
			k.PeriodEnd = d
		}
	}
	if k.TotalSales.IsPositive() {
		k.MarginPct = k.TotalTB.Div(k.TotalSales).Mul(hundred).Round(1)
	}
	return k
}

type accumulator struct {
	order []string
	by    map[string]*dto.GroupTotalDTO
}

func newAccumulator() *accumulator {
	return &accumulator{by: make(map[string]*dto.GroupTotalDTO)}
}

func (a *accumulator) add(key, label string, r entity.SalesRow) {
	g, ok := a.by[key]
	if !ok {
		g = &dto.GroupTotalDTO{Key: key, Label: label, Sales: decimal.Zero, TB: decimal.Zero, Quantity: decimal.Zero}
		a.by[key] = g
		a.order = append(a.order, key)
	}
	g.Sales = g.Sales.Add(r.SalesAmount)
	g.TB = g.TB.Add(r.TBAmount)
	g.Quantity = g.Quantity.Add(r.Quantity)
}

// sorted ordena de mayor a menor según metric; empates por clave ascendente.
func (a *accumulator) sorted(metric func(*dto.GroupTotalDTO) decimal.Decimal, limit int) []dto.GroupTotalDTO {
	out := make([]dto.GroupTotalDTO, 0, len(a.order))
	for _, k := range a.order {
		out = append(out, *a.by[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := metric(&out[i]).Cmp(metric(&out[j]))
		if c != 0 {
			return c > 0
		}
		return out[i].Key < out[j].Key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (a *accumulator) byKey() []dto.GroupTotalDTO {
	out := make([]dto.GroupTotalDTO, 0, len(a.order))
	for _, k := range a.order {
		out = append(out, *a.by[k])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func bySales(g *dto.GroupTotalDTO) decimal.Decimal { return g.Sales }
func byTB(g *dto.GroupTotalDTO) decimal.Decimal    { return g.TB }
func byQty(g *dto.GroupTotalDTO) decimal.Decimal   { return g.Quantity }

// Summarize KPIs y agrupaciones del tablero sobre filas ya filtradas.
func Summarize(rows []entity.SalesRow) *dto.SalesSummaryDTO {
	country, group, date := newAccumulator(), newAccumulator(), newAccumulator()
	customer, article := newAccumulator(), newAccumulator()
	for _, r := range rows {
		c := optionalLabel(r.Country)
		country.add(c, c, r)
		g := optionalLabel(r.CustomerGroup)
		group.add(g, g, r)
		d := r.DateString()
		date.add(d, d, r)
		customer.add(r.CustomerNumber, CustomerLabel(r), r)
		article.add(r.ArticleID, ArticleLabel(r), r)
	}
	return &dto.SalesSummaryDTO{
		KPI:                ComputeKPI(rows),
		ByCountry:          country.sorted(bySales, 0),
		ByCustomerGroup:    group.sorted(bySales, 0),
		ByDate:             date.byKey(),
		TopCustomersByTB:   customer.sorted(byTB, topCustomersByTB),
		ArticlesByQuantity: article.sorted(byQty, 0),
		ArticlesBySales:    article.sorted(bySales, 0),
	}
}

// TopCustomers top n clientes por ventas.
func TopCustomers(rows []entity.SalesRow, n int) []dto.GroupTotalDTO {
	acc := newAccumulator()
	for _, r := range rows {
		acc.add(r.CustomerNumber, CustomerLabel(r), r)
	}
	return acc.sorted(bySales, n)
}

// TopArticles top n artículos por ventas.
func TopArticles(rows []entity.SalesRow, n int) []dto.GroupTotalDTO {
	acc := newAccumulator()
	for _, r := range rows {
		acc.add(r.ArticleID, ArticleLabel(r), r)
	}
	return acc.sorted(bySales, n)
}
