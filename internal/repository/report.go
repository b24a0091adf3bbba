package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type OrderStats struct {
	OrderCount  int64
	TotalAmount decimal.Decimal
}

type ReportRepository interface {
	WithDB(db db.DB) ReportRepository
	// GetOrderStats aggregates orders created in [start, end).
	GetOrderStats(ctx context.Context, start, end time.Time) (OrderStats, error)
	// ListTopProducts ranks products sold in [start, end) by quantity, then by product id.
	ListTopProducts(ctx context.Context, start, end time.Time, limit int) ([]model.TopProduct, error)
}

type topProductRow struct {
	ProductID int64          `db:"product_id"`
	Name      string         `db:"name"`
	Quantity  int64          `db:"quantity"`
	Total     pgtype.Numeric `db:"total"`
}

type reportRepository struct {
	db db.DB
}

func NewReportRepository(db db.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r reportRepository) WithDB(db db.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r reportRepository) GetOrderStats(ctx context.Context, start, end time.Time) (OrderStats, error) {
	var (
		count int64
		total pgtype.Numeric
	)
	if err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(id)                      AS order_count,
			COALESCE(SUM(total_amount), 0) AS total_amount
		FROM orders
		WHERE created_at >= @start
		  AND created_at < @end
	`, pgx.NamedArgs{
		"start": start,
		"end":   end,
	}).Scan(&count, &total); err != nil {
		return OrderStats{}, fmt.Errorf("query order stats: %w", err)
	}

	totalAmount, err := fromNumeric(total)
	if err != nil {
		return OrderStats{}, fmt.Errorf("convert order stats total: %w", err)
	}

	return OrderStats{
		OrderCount:  count,
		TotalAmount: totalAmount,
	}, nil
}

func (r reportRepository) ListTopProducts(ctx context.Context, start, end time.Time, limit int) ([]model.TopProduct, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			oi.product_id                    AS product_id,
			p.name                           AS name,
			COALESCE(SUM(oi.quantity), 0)    AS quantity,
			COALESCE(SUM(oi.line_total), 0)  AS total
		FROM order_items AS oi
		JOIN products AS p ON p.id = oi.product_id
		JOIN orders AS o ON o.id = oi.order_id
		WHERE o.created_at >= @start
		  AND o.created_at < @end
		GROUP BY oi.product_id, p.name
		ORDER BY quantity DESC, oi.product_id ASC
		LIMIT @limit
	`, pgx.NamedArgs{
		"start": start,
		"end":   end,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}

	topRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[topProductRow])
	if err != nil {
		return nil, fmt.Errorf("collect top products: %w", err)
	}

	products := make([]model.TopProduct, 0, len(topRows))
	for _, row := range topRows {
		total, err := fromNumeric(row.Total)
		if err != nil {
			return nil, fmt.Errorf("convert total of top product %d: %w", row.ProductID, err)
		}
		products = append(products, model.TopProduct{
			ProductID: row.ProductID,
			Name:      row.Name,
			Quantity:  row.Quantity,
			Total:     total,
		})
	}

	return products, nil
}
