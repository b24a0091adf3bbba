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

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	GetProductBySku(ctx context.Context, sku string) (model.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (model.Product, error)
}

type productRow struct {
	ID         int64          `db:"id"`
	Sku        string         `db:"sku"`
	Name       string         `db:"name"`
	CategoryID int64          `db:"category_id"`
	Price      pgtype.Numeric `db:"price"`
	IsActive   bool           `db:"is_active"`
	CreatedAt  time.Time      `db:"created_at"`
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, sku, name, category_id, price, is_active, created_at`

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO products (sku, name, category_id, price, is_active)
		VALUES (@sku, @name, @category_id, @price, @is_active)
		RETURNING `+productColumns, pgx.NamedArgs{
		"sku":         product.Sku,
		"name":        product.Name,
		"category_id": product.CategoryID,
		"price":       toNumeric(product.Price),
		"is_active":   product.IsActive,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", constraintErr(err))
	}

	return collectProduct(rows)
}

func (r productRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Product{}, fmt.Errorf("query product: %w", err)
	}

	return collectProduct(rows)
}

func (r productRepository) GetProductBySku(ctx context.Context, sku string) (model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE sku = @sku`, pgx.NamedArgs{"sku": sku})
	if err != nil {
		return model.Product{}, fmt.Errorf("query product by sku: %w", err)
	}

	return collectProduct(rows)
}

func (r productRepository) GetProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY(@ids::bigint[])
	`, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("query products by ids: %w", err)
	}

	return collectProducts(rows)
}

func (r productRepository) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query, args := buildListProductsQuery(filter)
	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	return collectProducts(rows)
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE products
		SET
			name        = @name,
			category_id = @category_id,
			price       = @price,
			is_active   = @is_active
		WHERE id = @id
		RETURNING `+productColumns, pgx.NamedArgs{
		"id":          product.ID,
		"name":        product.Name,
		"category_id": product.CategoryID,
		"price":       toNumeric(product.Price),
		"is_active":   product.IsActive,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", constraintErr(err))
	}

	return collectProduct(rows)
}

// buildListProductsQuery lists active products only, optionally narrowed by a case-insensitive name
// substring and a category.
func buildListProductsQuery(filter model.ProductFilter) (string, pgx.NamedArgs) {
	var sb strings.Builder
	args := pgx.NamedArgs{}

	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE is_active`)
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(` AND name ILIKE @query`)
		args["query"] = "%" + escapeLike(q) + "%"
	}
	if filter.CategoryID != nil {
		sb.WriteString(` AND category_id = @category_id`)
		args["category_id"] = *filter.CategoryID
	}
	sb.WriteString(` ORDER BY id`)

	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func collectProduct(rows pgx.Rows) (model.Product, error) {
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		if db.IsNoRows(err) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, fmt.Errorf("collect product: %w", constraintErr(err))
	}

	return productRowToModel(row)
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	productRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	products := make([]model.Product, 0, len(productRows))
	for _, row := range productRows {
		product, err := productRowToModel(row)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

func productRowToModel(row productRow) (model.Product, error) {
	price, err := fromNumeric(row.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price of product %d: %w", row.ID, err)
	}

	return model.Product{
		ID:         row.ID,
		Sku:        row.Sku,
		Name:       row.Name,
		CategoryID: row.CategoryID,
		Price:      price,
		IsActive:   row.IsActive,
		CreatedAt:  row.CreatedAt,
	}, nil
}
