package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo implementación de SalesRepository sobre PostgreSQL.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

const insertSaleSQL = `
	INSERT INTO sales (date, customer_number, article_id, article_name, quantity,
		tb_amount, sales_amount, source_file, import_id, imported_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Append agrega el lote completo o nada. No hay clave de unicidad.
func (r *SalesRepo) Append(ctx context.Context, records []*entity.SalesRecord, sourceFile string) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		b := &pgx.Batch{}
		for _, rec := range records {
			rec.SourceFile = sourceFile
			if rec.ImportedAt.IsZero() {
				rec.ImportedAt = now
			}
			var importID *uuid.UUID
			if id, err := uuid.Parse(rec.ImportID); err == nil {
				importID = &id
			}
			b.Queue(insertSaleSQL,
				rec.Date, rec.CustomerNumber, rec.ArticleID, rec.ArticleName, rec.Quantity,
				rec.TBAmount, rec.SalesAmount, sourceFile, importID, rec.ImportedAt,
			)
		}
		return sendBatch(ctx, tx, b, "insert sale")
	})
}

// ReadAll ventas con los atributos del cliente (LEFT JOIN); cliente ausente -> campos nil.
func (r *SalesRepo) ReadAll(ctx context.Context) ([]entity.SalesRow, error) {
	query := `
		SELECT s.id, s.date, s.customer_number, s.article_id, COALESCE(s.article_name, ''),
		       s.quantity, s.tb_amount, s.sales_amount, COALESCE(s.source_file, ''),
		       COALESCE(s.import_id::text, ''), s.imported_at,
		       c.name, c.country, c.customer_group, c.city
		FROM sales s
		LEFT JOIN customers c ON c.customer_number = s.customer_number
		ORDER BY s.date, s.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sales: %w", err)
	}
	defer rows.Close()

	var out []entity.SalesRow
	for rows.Next() {
		var row entity.SalesRow
		if err := rows.Scan(
			&row.ID, &row.Date, &row.CustomerNumber, &row.ArticleID, &row.ArticleName,
			&row.Quantity, &row.TBAmount, &row.SalesAmount, &row.SourceFile,
			&row.ImportID, &row.ImportedAt,
			&row.CustomerName, &row.Country, &row.CustomerGroup, &row.City,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		row.Date = row.Date.UTC()
		out = append(out, row)
	}
	return out, rows.Err()
}

// ClearAll borra ventas y clientes atómicamente.
func (r *SalesRepo) ClearAll(ctx context.Context) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM sales`); err != nil {
			return fmt.Errorf("delete sales: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM customers`); err != nil {
			return fmt.Errorf("delete customers: %w", err)
		}
		return nil
	})
}
