package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/event"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type CreateProductParams struct {
	Sku        string
	Name       string
	CategoryID int64
	Price      decimal.Decimal
	IsActive   bool
}

type ProductService interface {
	// ListProducts returns active products only.
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error)
	// DeleteProduct deactivates the product and removes its inventory record.
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	db            db.DB
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	inventoryRepo repository.InventoryRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	inventoryRepo repository.InventoryRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		db:            db,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, productErr(err, id)
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	if err := validatePrice(params.Price); err != nil {
		return model.Product{}, err
	}

	var created model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if _, err := s.categoryRepo.WithDB(db).GetCategory(ctx, params.CategoryID); err != nil {
			return categoryErr(err, params.CategoryID)
		}

		var err error
		created, err = s.productRepo.
			WithDB(db).
			CreateProduct(ctx, model.Product{
				Sku:        params.Sku,
				Name:       params.Name,
				CategoryID: params.CategoryID,
				Price:      model.RoundMoney(params.Price),
				IsActive:   params.IsActive,
			})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperr.SkuTakenErr.WithMsgf("sku %q already exists", params.Sku)
			}
			return fmt.Errorf("product repository create product: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return created, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error) {
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return model.Product{}, err
		}
	}

	var updated model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		product, err := productRepo.GetProduct(ctx, id)
		if err != nil {
			return productErr(err, id)
		}

		if patch.CategoryID != nil {
			if _, err := s.categoryRepo.WithDB(db).GetCategory(ctx, *patch.CategoryID); err != nil {
				return categoryErr(err, *patch.CategoryID)
			}
		}

		patch.Apply(&product)

		updated, err = productRepo.UpdateProduct(ctx, product)
		if err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		product, err := productRepo.GetProduct(ctx, id)
		if err != nil {
			return productErr(err, id)
		}

		product.IsActive = false
		if _, err := productRepo.UpdateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		if err := s.inventoryRepo.
			WithDB(db).
			DeleteInventory(ctx, id); err != nil {
			return fmt.Errorf("inventory repository delete inventory: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicProductDeleted, id, event.ProductDeletedEvent{
			ProductID: product.ID,
			Sku:       product.Sku,
		})
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}

func productErr(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.ProductNotFoundErr.WithMsgf("product %d not found", id)
	}
	return fmt.Errorf("product repository get product: %w", err)
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperr.NegativePriceErr
	}
	if model.RoundMoney(price).GreaterThan(model.MaxPrice) {
		return apperr.PriceTooHighErr
	}
	return nil
}
