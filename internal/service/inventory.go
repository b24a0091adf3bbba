package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/event"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type InventoryService interface {
	ListInventory(ctx context.Context) ([]model.InventoryRecord, error)
	GetInventory(ctx context.Context, productID int64) (model.InventoryRecord, error)
	// SetQuantity creates or overwrites the stock of an active product.
	SetQuantity(ctx context.Context, productID int64, quantity int) (model.InventoryRecord, error)
}

type inventoryService struct {
	db            db.DB
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewInventoryService(
	db db.DB,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) InventoryService {
	return &inventoryService{
		db:            db,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *inventoryService) ListInventory(ctx context.Context) ([]model.InventoryRecord, error) {
	records, err := s.inventoryRepo.ListInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory repository list inventory: %w", err)
	}

	return records, nil
}

func (s *inventoryService) GetInventory(ctx context.Context, productID int64) (model.InventoryRecord, error) {
	record, err := s.inventoryRepo.GetInventory(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.InventoryRecord{}, apperr.InventoryNotFoundErr.WithMsgf("no inventory record for product %d", productID)
		}
		return model.InventoryRecord{}, fmt.Errorf("inventory repository get inventory: %w", err)
	}

	return record, nil
}

func (s *inventoryService) SetQuantity(ctx context.Context, productID int64, quantity int) (model.InventoryRecord, error) {
	if quantity < 0 {
		return model.InventoryRecord{}, apperr.NegativeQuantityErr
	}

	var record model.InventoryRecord
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		product, err := s.productRepo.WithDB(db).GetProduct(ctx, productID)
		if err != nil {
			return productErr(err, productID)
		}
		if !product.IsActive {
			return apperr.ProductNotFoundErr.WithMsgf("product %d not found", productID)
		}

		record, err = s.inventoryRepo.
			WithDB(db).
			UpsertInventory(ctx, productID, quantity)
		if err != nil {
			return fmt.Errorf("inventory repository upsert inventory: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicInventoryAdjusted, productID, event.InventoryAdjustedEvent{
			ProductID: productID,
			Quantity:  record.Quantity,
			Reason:    event.AdjustmentReasonManual,
		})
	}); err != nil {
		return model.InventoryRecord{}, fmt.Errorf("db with tx: %w", err)
	}

	return record, nil
}
