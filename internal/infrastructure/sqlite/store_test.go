package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "ventas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sale(customer, article string, qty int64) *entity.SalesRecord {
	return &entity.SalesRecord{
		Date:           time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		CustomerNumber: customer,
		ArticleID:      article,
		ArticleName:    "Wool Crew",
		Quantity:       decimal.NewFromInt(qty),
		TBAmount:       decimal.RequireFromString("12.5"),
		SalesAmount:    decimal.NewFromInt(100),
		ImportID:       "imp-1",
	}
}

func TestCustomerUpsert_ReemplazaCampos(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewCustomerRepository(openTestDB(t))

	require.NoError(t, repo.Upsert(ctx, []*entity.Customer{
		{CustomerNumber: "1001", Name: "Alfa AB", Country: "SE", City: "Malmö"},
	}))
	require.NoError(t, repo.Upsert(ctx, []*entity.Customer{
		{CustomerNumber: "1001", Name: "Alfa Sverige AB", Country: "NO"},
	}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "el upsert no debe duplicar la clave")
}

func TestSalesAppend_SinDeduplicacion(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	sales := sqlite.NewSalesRepository(db)

	batch := []*entity.SalesRecord{sale("1001", "E00042", 3)}
	require.NoError(t, sales.Append(ctx, batch, "a.xlsx"))
	require.NoError(t, sales.Append(ctx, []*entity.SalesRecord{sale("1001", "E00042", 3)}, "a.xlsx"))

	rows, err := sales.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "reimportar el mismo archivo duplica filas")
	assert.NotZero(t, batch[0].ID)
	assert.Equal(t, "a.xlsx", rows[0].SourceFile)
	assert.Equal(t, "imp-1", rows[0].ImportID)
	assert.Equal(t, "2025-03-31", rows[0].DateString())
	assert.True(t, decimal.NewFromInt(3).Equal(rows[0].Quantity))
	assert.True(t, decimal.RequireFromString("12.5").Equal(rows[0].TBAmount))
	assert.False(t, rows[0].ImportedAt.IsZero())
}

func TestSalesReadAll_LeftJoinCliente(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	customers := sqlite.NewCustomerRepository(db)
	sales := sqlite.NewSalesRepository(db)

	require.NoError(t, customers.Upsert(ctx, []*entity.Customer{
		{CustomerNumber: "1001", Name: "Alfa AB", Country: "SE", CustomerGroup: "Retail"},
	}))
	require.NoError(t, sales.Append(ctx, []*entity.SalesRecord{
		sale("1001", "E00042", 3),
		sale("2002", "E00043", 1),
	}, "mars.xlsx"))

	rows, err := sales.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byCustomer := map[string]entity.SalesRow{}
	for _, r := range rows {
		byCustomer[r.CustomerNumber] = r
	}
	known := byCustomer["1001"]
	require.NotNil(t, known.CustomerName)
	assert.Equal(t, "Alfa AB", *known.CustomerName)
	assert.Equal(t, "SE", *known.Country)
	assert.Nil(t, known.City, "los campos vacíos se guardan como NULL")

	unknown := byCustomer["2002"]
	assert.Nil(t, unknown.CustomerName)
	assert.Nil(t, unknown.Country)
	assert.Nil(t, unknown.CustomerGroup)
}

func TestSalesReadAll_UpsertVisibleEnJoin(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	customers := sqlite.NewCustomerRepository(db)
	sales := sqlite.NewSalesRepository(db)

	require.NoError(t, sales.Append(ctx, []*entity.SalesRecord{sale("1001", "E00042", 3)}, "x.xlsx"))
	require.NoError(t, customers.Upsert(ctx, []*entity.Customer{{CustomerNumber: "1001", Name: "Viejo"}}))
	require.NoError(t, customers.Upsert(ctx, []*entity.Customer{{CustomerNumber: "1001", Name: "Nuevo"}}))

	rows, err := sales.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].CustomerName)
	assert.Equal(t, "Nuevo", *rows[0].CustomerName)
}

func TestClearAll_VaciaVentasYClientes(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	customers := sqlite.NewCustomerRepository(db)
	sales := sqlite.NewSalesRepository(db)

	require.NoError(t, customers.Upsert(ctx, []*entity.Customer{{CustomerNumber: "1001"}}))
	require.NoError(t, sales.Append(ctx, []*entity.SalesRecord{sale("1001", "E00042", 3)}, "x.xlsx"))
	require.NoError(t, sales.ClearAll(ctx))

	rows, err := sales.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	n, err := customers.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAppend_VacioNoEsError(t *testing.T) {
	sales := sqlite.NewSalesRepository(openTestDB(t))
	assert.NoError(t, sales.Append(context.Background(), nil, "vacío.xlsx"))
}

func TestSettings_UltimoEnEscribirGana(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSettingRepository(openTestDB(t))

	_, ok, err := repo.Get(ctx, "gemini_api_key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, "gemini_api_key", "k1"))
	require.NoError(t, repo.Save(ctx, "gemini_api_key", "k2"))
	v, ok, err := repo.Get(ctx, "gemini_api_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "k2", v)

	require.NoError(t, repo.Delete(ctx, "gemini_api_key"))
	_, ok, err = repo.Get(ctx, "gemini_api_key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_MigracionIdempotente(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ventas.db")
	db1, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	defer db2.Close()
	assert.NoError(t, sqlite.Migrate(context.Background(), db2))
}
