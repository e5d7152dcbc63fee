package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo implementación SQLite de SalesRepository.
type SalesRepo struct {
	db *sql.DB
}

// NewSalesRepository construye el adaptador.
func NewSalesRepository(db *sql.DB) *SalesRepo {
	return &SalesRepo{db: db}
}

const insertSaleSQL = `
	INSERT INTO sales (date, customer_number, article_id, article_name, quantity,
		tb_amount, sales_amount, source_file, import_id, imported_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Append agrega los registros en una transacción. Sin deduplicación.
func (r *SalesRepo) Append(ctx context.Context, records []*entity.SalesRecord, sourceFile string) error {
	if len(records) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertSaleSQL)
		if err != nil {
			return fmt.Errorf("prepare insert sale: %w", err)
		}
		defer stmt.Close()
		for _, rec := range records {
			rec.SourceFile = sourceFile
			importedAt := rec.ImportedAt
			if importedAt.IsZero() {
				importedAt = time.Now().UTC()
			}
			res, err := stmt.ExecContext(ctx,
				rec.DateString(), rec.CustomerNumber, rec.ArticleID, rec.ArticleName,
				rec.Quantity.InexactFloat64(), rec.TBAmount.InexactFloat64(), rec.SalesAmount.InexactFloat64(),
				sourceFile, nullIfEmpty(rec.ImportID), importedAt.Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("insert sale: %w", err)
			}
			if id, err := res.LastInsertId(); err == nil {
				rec.ID = id
			}
		}
		return nil
	})
}

const readAllSQL = `
	SELECT s.id, s.date, s.customer_number, s.article_id, COALESCE(s.article_name, ''),
	       s.quantity, s.tb_amount, s.sales_amount, COALESCE(s.source_file, ''),
	       COALESCE(s.import_id, ''), COALESCE(s.imported_at, ''),
	       c.name, c.country, c.customer_group, c.city
	FROM sales s
	LEFT JOIN customers c ON c.customer_number = s.customer_number
	ORDER BY s.date, s.id`

// ReadAll ventas con atributos del cliente; clientes ausentes dan campos nil.
func (r *SalesRepo) ReadAll(ctx context.Context) ([]entity.SalesRow, error) {
	rows, err := r.db.QueryContext(ctx, readAllSQL)
	if err != nil {
		return nil, fmt.Errorf("read sales: %w", err)
	}
	defer rows.Close()

	var out []entity.SalesRow
	for rows.Next() {
		var (
			row                        entity.SalesRow
			date, importedAt           string
			qty, tb, sales             float64
			name, country, group, city sql.NullString
		)
		if err := rows.Scan(
			&row.ID, &date, &row.CustomerNumber, &row.ArticleID, &row.ArticleName,
			&qty, &tb, &sales, &row.SourceFile, &row.ImportID, &importedAt,
			&name, &country, &group, &city,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if row.Date, err = time.Parse(entity.DateLayout, date); err != nil {
			return nil, fmt.Errorf("sale %d: fecha inválida %q: %w", row.ID, date, err)
		}
		if importedAt != "" {
			row.ImportedAt, _ = time.Parse(time.RFC3339, importedAt)
		}
		row.Quantity = decimal.NewFromFloat(qty)
		row.TBAmount = decimal.NewFromFloat(tb)
		row.SalesAmount = decimal.NewFromFloat(sales)
		row.CustomerName = stringPtr(name)
		row.Country = stringPtr(country)
		row.CustomerGroup = stringPtr(group)
		row.City = stringPtr(city)
		out = append(out, row)
	}
	return out, rows.Err()
}

// ClearAll borra ventas y clientes en una sola transacción.
func (r *SalesRepo) ClearAll(ctx context.Context) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales`); err != nil {
			return fmt.Errorf("delete sales: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM customers`); err != nil {
			return fmt.Errorf("delete customers: %w", err)
		}
		return nil
	})
}
