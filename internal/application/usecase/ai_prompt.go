package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

const promptTopN = 5

// BuildSummaryPrompt arma el prompt con KPIs, período y los 5 principales artículos
// y clientes por facturación.
func BuildSummaryPrompt(rows []entity.SalesRow, scope string) string {
	k := analytics.ComputeKPI(rows)

	var b strings.Builder
	b.WriteString("Analyze the following sales data summary and provide strategic insights.\n\n")
	fmt.Fprintf(&b, "**Context**: %s\n\n", scope)
	b.WriteString("**Data Summary**:\n")
	fmt.Fprintf(&b, "- Total Records: %d\n", k.Records)
	fmt.Fprintf(&b, "- Total Revenue: %s kr\n", k.TotalSales.StringFixed(2))
	fmt.Fprintf(&b, "- Total Profit (TB): %s kr (Margin: %s%%)\n", k.TotalTB.StringFixed(2), k.MarginPct.StringFixed(1))
	fmt.Fprintf(&b, "- Total Quantity Sold: %s\n", k.TotalQty.String())
	if k.PeriodStart != "" && k.PeriodStart != k.PeriodEnd {
		fmt.Fprintf(&b, "- Period: Data covers period from %s to %s\n", k.PeriodStart, k.PeriodEnd)
	} else {
		b.WriteString("- Period: N/A\n")
	}

	b.WriteString("\n**Top 5 Articles (by Revenue)**:\n")
	writeTop(&b, analytics.TopArticles(rows, promptTopN))
	b.WriteString("\n**Top 5 Customers (by Revenue)**:\n")
	writeTop(&b, analytics.TopCustomers(rows, promptTopN))

	b.WriteString(`
**Instructions**:
1. Summarize the key performance indicators.
2. Identify the most important trends or observations.
3. Provide 2-3 actionable recommendations to increase profit or sales.
4. Keep the tone professional but accessible to a small business owner. Format with Markdown.
`)
	return b.String()
}

func writeTop(b *strings.Builder, top []dto.GroupTotalDTO) {
	if len(top) == 0 {
		b.WriteString("- N/A\n")
		return
	}
	for _, g := range top {
		fmt.Fprintf(b, "- %s: %s kr\n", g.Label, g.Sales.StringFixed(2))
	}
}
