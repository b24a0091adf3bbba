package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	CreateCategory(ctx context.Context, category model.Category) (model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, category model.Category) (model.Category, error)
}

type categoryRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, name, is_active, created_at`

func (r categoryRepository) CreateCategory(ctx context.Context, category model.Category) (model.Category, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO categories (name, is_active)
		VALUES (@name, @is_active)
		RETURNING `+categoryColumns, pgx.NamedArgs{
		"name":      category.Name,
		"is_active": category.IsActive,
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", constraintErr(err))
	}

	return collectCategory(rows)
}

func (r categoryRepository) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Category{}, fmt.Errorf("query category: %w", err)
	}

	return collectCategory(rows)
}

func (r categoryRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	categoryRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[categoryRow])
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}

	categories := make([]model.Category, 0, len(categoryRows))
	for _, row := range categoryRows {
		categories = append(categories, model.Category(row))
	}

	return categories, nil
}

func (r categoryRepository) UpdateCategory(ctx context.Context, category model.Category) (model.Category, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE categories
		SET
			name      = @name,
			is_active = @is_active
		WHERE id = @id
		RETURNING `+categoryColumns, pgx.NamedArgs{
		"id":        category.ID,
		"name":      category.Name,
		"is_active": category.IsActive,
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("update category: %w", constraintErr(err))
	}

	return collectCategory(rows)
}

func collectCategory(rows pgx.Rows) (model.Category, error) {
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[categoryRow])
	if err != nil {
		if db.IsNoRows(err) {
			return model.Category{}, ErrNotFound
		}
		return model.Category{}, fmt.Errorf("collect category: %w", constraintErr(err))
	}

	return model.Category(row), nil
}
