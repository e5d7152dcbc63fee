package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

func strp(s string) *string { return &s }

func row(id int64, date, customer string, name, country, group *string, article string, qty, tb, sales int64) entity.SalesRow {
	d, _ := time.Parse(entity.DateLayout, date)
	return entity.SalesRow{
		SalesRecord: entity.SalesRecord{
			ID: id, Date: d, CustomerNumber: customer, ArticleID: article, ArticleName: "Wool " + article,
			Quantity: decimal.NewFromInt(qty), TBAmount: decimal.NewFromInt(tb), SalesAmount: decimal.NewFromInt(sales),
		},
		CustomerName: name, Country: country, CustomerGroup: group,
	}
}

func fixtureRows() []entity.SalesRow {
	return []entity.SalesRow{
		row(1, "2025-01-31", "1001", strp("Alfa AB"), strp("SE"), strp("Retail"), "E00042", 10, 40, 100),
		row(2, "2025-02-28", "1001", strp("Alfa AB"), strp("SE"), strp("Retail"), "E00043", 5, 10, 50),
		row(3, "2025-02-28", "9012", nil, nil, nil, "E00042", 2, 8, 20),
		row(4, "2025-03-31", "2002", strp("Beta AS"), strp("NO"), nil, "E00042", -1, -4, -10),
	}
}

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeSales struct {
	rows    []entity.SalesRow
	err     error
	cleared bool
}

func (f *fakeSales) Append(context.Context, []*entity.SalesRecord, string) error { return nil }
func (f *fakeSales) ReadAll(context.Context) ([]entity.SalesRow, error)         { return f.rows, f.err }
func (f *fakeSales) ClearAll(context.Context) error                             { f.cleared = true; return nil }

type fakeCustomers struct{ n int }

func (f *fakeCustomers) Upsert(context.Context, []*entity.Customer) error { return nil }
func (f *fakeCustomers) Count(context.Context) (int, error)               { return f.n, nil }

// ── Filter ────────────────────────────────────────────────────────────────────

func TestParseFilter_FechaInvalida(t *testing.T) {
	_, err := analytics.ParseFilter(dto.SalesFilterRequest{From: "31/01/2025"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParseFilter_TipoClienteInvalido(t *testing.T) {
	_, err := analytics.ParseFilter(dto.SalesFilterRequest{CustomerType: "vip"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilter_RangoDeFechasInclusivo(t *testing.T) {
	f, err := analytics.ParseFilter(dto.SalesFilterRequest{From: "2025-02-28", To: "2025-02-28"})
	require.NoError(t, err)
	got := f.Apply(fixtureRows())
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestFilter_UnknownSeleccionaNulos(t *testing.T) {
	f, err := analytics.ParseFilter(dto.SalesFilterRequest{Country: "Unknown"})
	require.NoError(t, err)
	got := f.Apply(fixtureRows())
	require.Len(t, got, 1)
	assert.Equal(t, "9012", got[0].CustomerNumber)

	f, err = analytics.ParseFilter(dto.SalesFilterRequest{Group: "Unknown"})
	require.NoError(t, err)
	assert.Len(t, f.Apply(fixtureRows()), 2)
}

func TestFilter_TipoCliente(t *testing.T) {
	priv, err := analytics.ParseFilter(dto.SalesFilterRequest{CustomerType: "Private"})
	require.NoError(t, err)
	got := priv.Apply(fixtureRows())
	require.Len(t, got, 1)
	assert.Equal(t, "9012", got[0].CustomerNumber)

	biz, err := analytics.ParseFilter(dto.SalesFilterRequest{CustomerType: "business"})
	require.NoError(t, err)
	assert.Len(t, biz.Apply(fixtureRows()), 3)
}

func TestFilter_ClienteYArticulo(t *testing.T) {
	f, err := analytics.ParseFilter(dto.SalesFilterRequest{Customer: "1001", ArticleID: "E00043"})
	require.NoError(t, err)
	got := f.Apply(fixtureRows())
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilter_Describe(t *testing.T) {
	f, _ := analytics.ParseFilter(dto.SalesFilterRequest{})
	assert.Equal(t, "All Data", f.Describe())

	f, _ = analytics.ParseFilter(dto.SalesFilterRequest{CustomerType: "private", ArticleID: "E00042"})
	assert.Equal(t, "Customer Type: Private, Article: E00042", f.Describe())
}

// ── Summary ───────────────────────────────────────────────────────────────────

func TestComputeKPI(t *testing.T) {
	k := analytics.ComputeKPI(fixtureRows())
	assert.Equal(t, 4, k.Records)
	assert.True(t, decimal.NewFromInt(160).Equal(k.TotalSales), k.TotalSales.String())
	assert.True(t, decimal.NewFromInt(54).Equal(k.TotalTB))
	assert.True(t, decimal.NewFromInt(16).Equal(k.TotalQty))
	assert.Equal(t, "33.8", k.MarginPct.String())
	assert.Equal(t, "2025-01-31", k.PeriodStart)
	assert.Equal(t, "2025-03-31", k.PeriodEnd)
}

func TestComputeKPI_SinVentasMargenCero(t *testing.T) {
	k := analytics.ComputeKPI(nil)
	assert.Zero(t, k.Records)
	assert.True(t, k.MarginPct.IsZero())
	assert.Empty(t, k.PeriodStart)
}

func TestSummarize_Agrupaciones(t *testing.T) {
	s := analytics.Summarize(fixtureRows())

	require.Len(t, s.ByCountry, 3)
	assert.Equal(t, "SE", s.ByCountry[0].Key)
	assert.True(t, decimal.NewFromInt(150).Equal(s.ByCountry[0].Sales))
	assert.Equal(t, "Unknown", s.ByCountry[1].Key)

	require.Len(t, s.ByDate, 3)
	assert.Equal(t, "2025-01-31", s.ByDate[0].Key)
	assert.Equal(t, "2025-03-31", s.ByDate[2].Key)

	require.Len(t, s.TopCustomersByTB, 3)
	assert.Equal(t, "Alfa AB", s.TopCustomersByTB[0].Label)
	assert.Equal(t, "9012", s.TopCustomersByTB[1].Label, "sin registro se muestra el número")

	require.Len(t, s.ArticlesBySales, 2)
	assert.Equal(t, "E00042", s.ArticlesBySales[0].Key)
	assert.Equal(t, "E00042 - Wool E00042", s.ArticlesBySales[0].Label)
}

func TestTopArticles_Limite(t *testing.T) {
	top := analytics.TopArticles(fixtureRows(), 1)
	require.Len(t, top, 1)
	assert.Equal(t, "E00042", top[0].Key)
}

// ── Use case ──────────────────────────────────────────────────────────────────

func TestDashboard_ListPagina(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeSales{rows: fixtureRows()}, &fakeCustomers{})

	res, err := uc.List(context.Background(), dto.SalesFilterRequest{}, dto.PageRequest{Limit: 2, Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Page.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "2025-03-31", res.Items[0].Date)

	res, err = uc.List(context.Background(), dto.SalesFilterRequest{}, dto.PageRequest{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestDashboard_PropagaErrores(t *testing.T) {
	boom := errors.New("db down")
	uc := analytics.NewDashboardUseCase(&fakeSales{err: boom}, &fakeCustomers{})
	_, err := uc.Summary(context.Background(), dto.SalesFilterRequest{})
	assert.ErrorIs(t, err, boom)
}

func TestDashboard_CountYClear(t *testing.T) {
	sales := &fakeSales{}
	uc := analytics.NewDashboardUseCase(sales, &fakeCustomers{n: 7})

	n, err := uc.CustomerCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	require.NoError(t, uc.ClearAll(context.Background()))
	assert.True(t, sales.cleared)
}
