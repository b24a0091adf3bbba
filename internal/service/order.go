package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/event"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type OrderService interface {
	// CreateOrder prices the basket against the current catalog, persists the order with its lines and
	// decrements stock, all in one transaction.
	CreateOrder(ctx context.Context, createdBy int64, basket []model.BasketLine) (model.Order, error)
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type orderService struct {
	logger        *slog.Logger
	db            db.DB
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	orderRepo     repository.OrderRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewOrderService(
	logger *slog.Logger,
	db db.DB,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		logger:        logger.With(slog.String("service", "order")),
		db:            db,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, createdBy int64, basket []model.BasketLine) (model.Order, error) {
	if err := validateBasket(basket); err != nil {
		return model.Order{}, err
	}

	productIDs := basketProductIDs(basket)

	var created model.Order
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		products, err := s.productRepo.
			WithDB(db).
			GetProductsByIDs(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("product repository get products by ids: %w", err)
		}

		records, err := s.inventoryRepo.
			WithDB(db).
			GetInventoryByProductIDs(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("inventory repository get inventory by product ids: %w", err)
		}

		order, err := priceBasket(createdBy, basket, productsByID(products), inventoryByProductID(records))
		if err != nil {
			return err
		}

		created, err = s.orderRepo.
			WithDB(db).
			CreateOrder(ctx, order)
		if err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}

		remaining := make(map[int64]int, len(productIDs))
		for _, line := range created.Lines {
			record, err := s.inventoryRepo.
				WithDB(db).
				DecrementInventory(ctx, line.ProductID, line.Quantity)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return apperr.InventoryMissingErr.WithMsgf("inventory missing for product %d", line.ProductID)
			case errors.Is(err, repository.ErrInsufficientQuantity):
				return apperr.InsufficientStockErr.WithMsgf("insufficient stock for product %d", line.ProductID)
			case err != nil:
				return fmt.Errorf("inventory repository decrement inventory: %w", err)
			}
			remaining[line.ProductID] = record.Quantity
		}

		outboxRepo := s.outboxMsgRepo.WithDB(db)
		if err := publish(ctx, outboxRepo, event.TopicOrderCreated, created.ID, orderCreatedEvent(created)); err != nil {
			return err
		}

		for _, productID := range productIDs {
			if err := publish(ctx, outboxRepo, event.TopicInventoryAdjusted, productID, event.InventoryAdjustedEvent{
				ProductID: productID,
				Quantity:  remaining[productID],
				Reason:    event.AdjustmentReasonSale,
				OrderID:   &created.ID,
			}); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.Int64("order_id", created.ID),
		slog.Int64("created_by", createdBy),
		slog.String("total_amount", model.FormatMoney(created.TotalAmount)),
		slog.Int("lines", len(created.Lines)),
	)

	return created, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Order{}, apperr.OrderNotFoundErr.WithMsgf("order %d not found", id)
		}
		return model.Order{}, fmt.Errorf("order repository get order: %w", err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("order repository list orders: %w", err)
	}

	return orders, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.OrderNotFoundErr.WithMsgf("order %d not found", id)
		}
		return fmt.Errorf("order repository delete order: %w", err)
	}

	s.logger.InfoContext(ctx, "order deleted", slog.Int64("order_id", id))

	return nil
}

func validateBasket(basket []model.BasketLine) error {
	if len(basket) == 0 {
		return apperr.OrderNoItemsErr
	}

	for i, line := range basket {
		if line.Quantity <= 0 {
			return apperr.InvalidQuantityErr.WithMsgf("line %d: quantity must be a positive integer", i+1)
		}
	}

	return nil
}

// basketProductIDs returns the distinct product ids of basket in first-seen order.
func basketProductIDs(basket []model.BasketLine) []int64 {
	seen := make(map[int64]struct{}, len(basket))
	ids := make([]int64, 0, len(basket))
	for _, line := range basket {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

func productsByID(products []model.Product) map[int64]model.Product {
	m := make(map[int64]model.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func inventoryByProductID(records []model.InventoryRecord) map[int64]model.InventoryRecord {
	m := make(map[int64]model.InventoryRecord, len(records))
	for _, r := range records {
		m[r.ProductID] = r
	}
	return m
}

// priceBasket validates every line against the snapshot and builds the unsaved order. Lines keep the
// caller's order and are not merged. Repeated products are checked on their cumulative quantity.
func priceBasket(
	createdBy int64,
	basket []model.BasketLine,
	products map[int64]model.Product,
	inventory map[int64]model.InventoryRecord,
) (model.Order, error) {
	claimed := make(map[int64]int, len(basket))
	lines := make([]model.OrderLine, 0, len(basket))
	total := decimal.Zero

	for _, item := range basket {
		product, ok := products[item.ProductID]
		if !ok || !product.IsActive {
			return model.Order{}, apperr.ProductNotFoundErr.WithMsgf("product %d not found", item.ProductID)
		}

		available := 0
		if record, ok := inventory[item.ProductID]; ok {
			available = record.Quantity
		}

		claimed[item.ProductID] += item.Quantity
		if claimed[item.ProductID] > available {
			return model.Order{}, apperr.InsufficientStockErr.WithMsgf("insufficient stock for product %d", item.ProductID)
		}

		lineTotal := model.LineTotal(product.Price, item.Quantity)
		total = total.Add(lineTotal)

		lines = append(lines, model.OrderLine{
			ProductID: item.ProductID,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
	}

	return model.Order{
		CreatedBy:   createdBy,
		TotalAmount: model.RoundMoney(total),
		Lines:       lines,
	}, nil
}

func orderCreatedEvent(order model.Order) event.OrderCreatedEvent {
	lines := make([]event.OrderCreatedLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, event.OrderCreatedLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: model.FormatMoney(line.UnitPrice),
			LineTotal: model.FormatMoney(line.LineTotal),
		})
	}

	return event.OrderCreatedEvent{
		OrderID:     order.ID,
		CreatedBy:   order.CreatedBy,
		TotalAmount: model.FormatMoney(order.TotalAmount),
		Lines:       lines,
	}
}
