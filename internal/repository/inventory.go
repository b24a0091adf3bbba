package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type InventoryRepository interface {
	WithDB(db db.DB) InventoryRepository
	ListInventory(ctx context.Context) ([]model.InventoryRecord, error)
	GetInventory(ctx context.Context, productID int64) (model.InventoryRecord, error)
	GetInventoryByProductIDs(ctx context.Context, productIDs []int64) ([]model.InventoryRecord, error)
	UpsertInventory(ctx context.Context, productID int64, quantity int) (model.InventoryRecord, error)
	// DecrementInventory subtracts quantity only if enough stock is on hand. It returns ErrNotFound when
	// the record does not exist and ErrInsufficientQuantity when the stock is too low.
	DecrementInventory(ctx context.Context, productID int64, quantity int) (model.InventoryRecord, error)
	DeleteInventory(ctx context.Context, productID int64) error
}

type inventoryRow struct {
	ProductID int64     `db:"product_id"`
	Quantity  int       `db:"quantity"`
	UpdatedAt time.Time `db:"updated_at"`
}

type inventoryRepository struct {
	db db.DB
}

func NewInventoryRepository(db db.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r inventoryRepository) WithDB(db db.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `product_id, quantity, updated_at`

func (r inventoryRepository) ListInventory(ctx context.Context) ([]model.InventoryRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}

	return collectInventoryRecords(rows)
}

func (r inventoryRepository) GetInventory(ctx context.Context, productID int64) (model.InventoryRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory
		WHERE product_id = @product_id
	`, pgx.NamedArgs{"product_id": productID})
	if err != nil {
		return model.InventoryRecord{}, fmt.Errorf("query inventory record: %w", err)
	}

	return collectInventoryRecord(rows)
}

func (r inventoryRepository) GetInventoryByProductIDs(ctx context.Context, productIDs []int64) ([]model.InventoryRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory
		WHERE product_id = ANY(@product_ids::bigint[])
	`, pgx.NamedArgs{"product_ids": productIDs})
	if err != nil {
		return nil, fmt.Errorf("query inventory by product ids: %w", err)
	}

	return collectInventoryRecords(rows)
}

func (r inventoryRepository) UpsertInventory(ctx context.Context, productID int64, quantity int) (model.InventoryRecord, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO inventory (product_id, quantity, updated_at)
		VALUES (@product_id, @quantity, NOW())
		ON CONFLICT (product_id) DO UPDATE
		SET
			quantity   = EXCLUDED.quantity,
			updated_at = EXCLUDED.updated_at
		RETURNING `+inventoryColumns, pgx.NamedArgs{
		"product_id": productID,
		"quantity":   quantity,
	})
	if err != nil {
		return model.InventoryRecord{}, fmt.Errorf("upsert inventory: %w", constraintErr(err))
	}

	return collectInventoryRecord(rows)
}

func (r inventoryRepository) DecrementInventory(ctx context.Context, productID int64, quantity int) (model.InventoryRecord, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE inventory
		SET
			quantity   = quantity - @quantity,
			updated_at = NOW()
		WHERE product_id = @product_id
		  AND quantity >= @quantity
		RETURNING `+inventoryColumns, pgx.NamedArgs{
		"product_id": productID,
		"quantity":   quantity,
	})
	if err != nil {
		return model.InventoryRecord{}, fmt.Errorf("decrement inventory: %w", err)
	}

	record, err := collectInventoryRecord(rows)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.InventoryRecord{}, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM inventory WHERE product_id = @product_id)
	`, pgx.NamedArgs{"product_id": productID}).Scan(&exists); err != nil {
		return model.InventoryRecord{}, fmt.Errorf("check inventory exists: %w", err)
	}
	if !exists {
		return model.InventoryRecord{}, ErrNotFound
	}

	return model.InventoryRecord{}, ErrInsufficientQuantity
}

func (r inventoryRepository) DeleteInventory(ctx context.Context, productID int64) error {
	if _, err := r.db.Exec(ctx, `
		DELETE FROM inventory WHERE product_id = @product_id
	`, pgx.NamedArgs{"product_id": productID}); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}

	return nil
}

func collectInventoryRecord(rows pgx.Rows) (model.InventoryRecord, error) {
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[inventoryRow])
	if err != nil {
		if db.IsNoRows(err) {
			return model.InventoryRecord{}, ErrNotFound
		}
		return model.InventoryRecord{}, fmt.Errorf("collect inventory record: %w", constraintErr(err))
	}

	return model.InventoryRecord(row), nil
}

func collectInventoryRecords(rows pgx.Rows) ([]model.InventoryRecord, error) {
	inventoryRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[inventoryRow])
	if err != nil {
		return nil, fmt.Errorf("collect inventory records: %w", err)
	}

	records := make([]model.InventoryRecord, 0, len(inventoryRows))
	for _, row := range inventoryRows {
		records = append(records, model.InventoryRecord(row))
	}

	return records, nil
}
