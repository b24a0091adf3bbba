package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type CreateCategoryParams struct {
	Name     string
	IsActive bool
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error)
	UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (model.Category, error)
	// DeleteCategory deactivates the category. Categories are never removed.
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryService struct {
	db           db.DB
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(db db.DB, categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{
		db:           db,
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository list categories: %w", err)
	}

	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		return model.Category{}, categoryErr(err, id)
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error) {
	category, err := s.categoryRepo.CreateCategory(ctx, model.Category{
		Name:     params.Name,
		IsActive: params.IsActive,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Category{}, apperr.CategoryNameTakenErr.WithMsgf("category %q already exists", params.Name)
		}
		return model.Category{}, fmt.Errorf("category repository create category: %w", err)
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (model.Category, error) {
	var updated model.Category
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.categoryRepo.WithDB(db)

		category, err := repo.GetCategory(ctx, id)
		if err != nil {
			return categoryErr(err, id)
		}

		patch.Apply(&category)

		updated, err = repo.UpdateCategory(ctx, category)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperr.CategoryNameTakenErr.WithMsgf("category %q already exists", category.Name)
			}
			return fmt.Errorf("category repository update category: %w", err)
		}

		return nil
	}); err != nil {
		return model.Category{}, fmt.Errorf("db with tx: %w", err)
	}

	return updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	inactive := false
	if _, err := s.UpdateCategory(ctx, id, model.CategoryPatch{IsActive: &inactive}); err != nil {
		return err
	}

	return nil
}

func categoryErr(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.CategoryNotFoundErr.WithMsgf("category %d not found", id)
	}
	return fmt.Errorf("category repository get category: %w", err)
}
