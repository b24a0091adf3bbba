package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type OrderRepository interface {
	WithDB(db db.DB) OrderRepository
	// CreateOrder inserts the order and its lines and returns them with their generated ids.
	CreateOrder(ctx context.Context, order model.Order) (model.Order, error)
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type orderRow struct {
	ID          int64          `db:"id"`
	CreatedBy   int64          `db:"created_by"`
	TotalAmount pgtype.Numeric `db:"total_amount"`
	CreatedAt   time.Time      `db:"created_at"`
}

type orderLineRow struct {
	ID        int64          `db:"id"`
	OrderID   int64          `db:"order_id"`
	ProductID int64          `db:"product_id"`
	UnitPrice pgtype.Numeric `db:"unit_price"`
	Quantity  int            `db:"quantity"`
	LineTotal pgtype.Numeric `db:"line_total"`
}

type orderRepository struct {
	db db.DB
}

func NewOrderRepository(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) WithDB(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

const (
	orderColumns     = `id, created_by, total_amount, created_at`
	orderLineColumns = `id, order_id, product_id, unit_price, quantity, line_total`
)

func (r orderRepository) CreateOrder(ctx context.Context, order model.Order) (model.Order, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO orders (created_by, total_amount)
		VALUES (@created_by, @total_amount)
		RETURNING `+orderColumns, pgx.NamedArgs{
		"created_by":   order.CreatedBy,
		"total_amount": toNumeric(order.TotalAmount),
	})
	if err != nil {
		return model.Order{}, fmt.Errorf("insert order: %w", constraintErr(err))
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		return model.Order{}, fmt.Errorf("collect order: %w", constraintErr(err))
	}

	created, err := orderRowToModel(row)
	if err != nil {
		return model.Order{}, err
	}

	batch := &pgx.Batch{}
	for _, line := range order.Lines {
		batch.Queue(`
			INSERT INTO order_items (order_id, product_id, unit_price, quantity, line_total)
			VALUES (@order_id, @product_id, @unit_price, @quantity, @line_total)
			RETURNING id
		`, pgx.NamedArgs{
			"order_id":   created.ID,
			"product_id": line.ProductID,
			"unit_price": toNumeric(line.UnitPrice),
			"quantity":   line.Quantity,
			"line_total": toNumeric(line.LineTotal),
		})
	}

	results := r.db.SendBatch(ctx, batch)
	created.Lines = make([]model.OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		if err := results.QueryRow().Scan(&line.ID); err != nil {
			//nolint:errcheck
			results.Close()
			return model.Order{}, fmt.Errorf("insert order line: %w", constraintErr(err))
		}
		line.OrderID = created.ID
		created.Lines = append(created.Lines, line)
	}
	if err := results.Close(); err != nil {
		return model.Order{}, fmt.Errorf("close order line batch: %w", err)
	}

	return created, nil
}

func (r orderRepository) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Order{}, fmt.Errorf("query order: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		if db.IsNoRows(err) {
			return model.Order{}, ErrNotFound
		}
		return model.Order{}, fmt.Errorf("collect order: %w", err)
	}

	order, err := orderRowToModel(row)
	if err != nil {
		return model.Order{}, err
	}

	linesByOrder, err := r.listLines(ctx, []int64{order.ID})
	if err != nil {
		return model.Order{}, err
	}
	order.Lines = linesByOrder[order.ID]

	return order, nil
}

func (r orderRepository) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query, args := buildListOrdersQuery(filter)
	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	orderRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		return nil, fmt.Errorf("collect orders: %w", err)
	}

	orders := make([]model.Order, 0, len(orderRows))
	ids := make([]int64, 0, len(orderRows))
	for _, row := range orderRows {
		order, err := orderRowToModel(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	linesByOrder, err := r.listLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = linesByOrder[orders[i].ID]
	}

	return orders, nil
}

func (r orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r orderRepository) listLines(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderLineColumns+`
		FROM order_items
		WHERE order_id = ANY(@order_ids::bigint[])
		ORDER BY order_id, id
	`, pgx.NamedArgs{"order_ids": orderIDs})
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}

	lineRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[orderLineRow])
	if err != nil {
		return nil, fmt.Errorf("collect order lines: %w", err)
	}

	linesByOrder := make(map[int64][]model.OrderLine, len(orderIDs))
	for _, row := range lineRows {
		line, err := orderLineRowToModel(row)
		if err != nil {
			return nil, err
		}
		linesByOrder[line.OrderID] = append(linesByOrder[line.OrderID], line)
	}

	return linesByOrder, nil
}

// buildListOrdersQuery filters on an inclusive creation time range, newest first.
func buildListOrdersQuery(filter model.OrderFilter) (string, pgx.NamedArgs) {
	filter = filter.Normalize()

	var sb strings.Builder
	args := pgx.NamedArgs{
		"limit":  filter.Limit,
		"offset": filter.Offset,
	}

	sb.WriteString(`SELECT ` + orderColumns + ` FROM orders WHERE TRUE`)
	if filter.From != nil {
		sb.WriteString(` AND created_at >= @from`)
		args["from"] = *filter.From
	}
	if filter.To != nil {
		sb.WriteString(` AND created_at <= @to`)
		args["to"] = *filter.To
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT @limit OFFSET @offset`)

	return sb.String(), args
}

func orderRowToModel(row orderRow) (model.Order, error) {
	total, err := fromNumeric(row.TotalAmount)
	if err != nil {
		return model.Order{}, fmt.Errorf("convert total of order %d: %w", row.ID, err)
	}

	return model.Order{
		ID:          row.ID,
		CreatedBy:   row.CreatedBy,
		TotalAmount: total,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func orderLineRowToModel(row orderLineRow) (model.OrderLine, error) {
	unitPrice, err := fromNumeric(row.UnitPrice)
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("convert unit price of order line %d: %w", row.ID, err)
	}
	lineTotal, err := fromNumeric(row.LineTotal)
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("convert line total of order line %d: %w", row.ID, err)
	}

	return model.OrderLine{
		ID:        row.ID,
		OrderID:   row.OrderID,
		ProductID: row.ProductID,
		UnitPrice: unitPrice,
		Quantity:  row.Quantity,
		LineTotal: lineTotal,
	}, nil
}
