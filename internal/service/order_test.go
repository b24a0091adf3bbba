package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/event"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/zerror"
)

const cashierID = int64(1000)

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Should price lines, persist the order and decrement stock", func(t *testing.T) {
		h := newHarness(t)
		bev := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", bev.ID, "3.50", true)
		h.store.setStock(coffee.ID, 5)

		order, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{{ProductID: coffee.ID, Quantity: 2}})
		require.NoError(t, err)

		assert.Equal(t, "7.00", model.FormatMoney(order.TotalAmount))
		assert.Equal(t, cashierID, order.CreatedBy)
		require.Len(t, order.Lines, 1)
		assert.Equal(t, "3.50", model.FormatMoney(order.Lines[0].UnitPrice))
		assert.Equal(t, "7.00", model.FormatMoney(order.Lines[0].LineTotal))
		assert.Equal(t, 3, h.store.inventory[coffee.ID].Quantity)

		stored, err := h.orders.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, stored.TotalAmount.Equal(stored.LinesTotal()))
	})

	t.Run("Should round every line half up", func(t *testing.T) {
		h := newHarness(t)
		snacks := h.store.addCategory("Snacks")
		chips := h.store.addProduct("SNK-001", "Chips", snacks.ID, "1.99", true)
		h.store.setStock(chips.ID, 10)

		order, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{{ProductID: chips.ID, Quantity: 2}})
		require.NoError(t, err)

		assert.Equal(t, "3.98", model.FormatMoney(order.TotalAmount))
		assert.Equal(t, 8, h.store.inventory[chips.ID].Quantity)
	})

	t.Run("Should sum lines in caller order", func(t *testing.T) {
		h := newHarness(t)
		cat := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)
		tea := h.store.addProduct("BEV-002", "Tea", cat.ID, "2.25", true)
		h.store.setStock(coffee.ID, 5)
		h.store.setStock(tea.ID, 5)

		order, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{
			{ProductID: tea.ID, Quantity: 3},
			{ProductID: coffee.ID, Quantity: 1},
		})
		require.NoError(t, err)

		require.Len(t, order.Lines, 2)
		assert.Equal(t, tea.ID, order.Lines[0].ProductID)
		assert.Equal(t, coffee.ID, order.Lines[1].ProductID)
		assert.Equal(t, "10.25", model.FormatMoney(order.TotalAmount))
	})

	t.Run("Should write order and inventory events to the outbox", func(t *testing.T) {
		h := newHarness(t)
		cat := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)
		h.store.setStock(coffee.ID, 5)

		order, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{{ProductID: coffee.ID, Quantity: 2}})
		require.NoError(t, err)

		require.Equal(t, []string{event.TopicOrderCreated, event.TopicInventoryAdjusted}, h.store.topics())

		var created event.OrderCreatedEvent
		require.NoError(t, json.Unmarshal(h.store.outbox[0].Payload, &created))
		assert.Equal(t, order.ID, created.OrderID)
		assert.Equal(t, "7.00", created.TotalAmount)

		var adjusted event.InventoryAdjustedEvent
		require.NoError(t, json.Unmarshal(h.store.outbox[1].Payload, &adjusted))
		assert.Equal(t, 3, adjusted.Quantity)
		assert.Equal(t, event.AdjustmentReasonSale, adjusted.Reason)
	})

	t.Run("Should reject the whole order when any line exceeds stock", func(t *testing.T) {
		h := newHarness(t)
		cat := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)
		tea := h.store.addProduct("BEV-002", "Tea", cat.ID, "2.25", true)
		h.store.setStock(coffee.ID, 10)
		h.store.setStock(tea.ID, 10)

		_, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{
			{ProductID: coffee.ID, Quantity: 1},
			{ProductID: tea.ID, Quantity: 20},
		})

		assert.True(t, zerror.HasCode(err, apperr.InsufficientStockCode))
		assert.Equal(t, 10, h.store.inventory[coffee.ID].Quantity)
		assert.Equal(t, 10, h.store.inventory[tea.ID].Quantity)
		assert.Empty(t, h.store.orders)
		assert.Empty(t, h.store.outbox)
	})

	t.Run("Should check repeated products on their combined quantity", func(t *testing.T) {
		h := newHarness(t)
		cat := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)
		h.store.setStock(coffee.ID, 3)

		_, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{
			{ProductID: coffee.ID, Quantity: 2},
			{ProductID: coffee.ID, Quantity: 2},
		})

		assert.True(t, zerror.HasCode(err, apperr.InsufficientStockCode))
		assert.Equal(t, 3, h.store.inventory[coffee.ID].Quantity)
	})

	t.Run("Should treat a product without inventory as out of stock", func(t *testing.T) {
		h := newHarness(t)
		cat := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)

		_, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{{ProductID: coffee.ID, Quantity: 1}})

		assert.True(t, zerror.HasCode(err, apperr.InsufficientStockCode))
	})

	t.Run("Should reject an empty basket before any lookup", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.orders.CreateOrder(ctx, cashierID, nil)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.OrderNoItemsCode, zErr.Code())
		assert.Equal(t, "no items provided", zErr.Msg())
	})

	t.Run("Should reject non positive quantities", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{{ProductID: 1, Quantity: 0}})

		assert.True(t, zerror.HasCode(err, apperr.InvalidQuantityCode))
	})

	t.Run("Should return not found for unknown and inactive products without changes", func(t *testing.T) {
		h := newHarness(t)
		cat := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)
		retired := h.store.addProduct("BEV-009", "Retired", cat.ID, "1.00", false)
		h.store.setStock(coffee.ID, 5)
		h.store.setStock(retired.ID, 5)

		for _, id := range []int64{9999, retired.ID} {
			_, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{
				{ProductID: coffee.ID, Quantity: 1},
				{ProductID: id, Quantity: 1},
			})
			assert.True(t, zerror.HasCode(err, apperr.ProductNotFoundCode))
		}

		assert.Equal(t, 5, h.store.inventory[coffee.ID].Quantity)
		assert.Empty(t, h.store.orders)
	})

	t.Run("Should roll back when inventory disappears before the decrement", func(t *testing.T) {
		h := newHarness(t)
		cat := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)
		h.store.setStock(coffee.ID, 5)
		h.store.beforeDecrement = func(s *memStore, productID int64) {
			delete(s.inventory, productID)
		}

		_, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{{ProductID: coffee.ID, Quantity: 1}})

		assert.True(t, zerror.HasCode(err, apperr.InventoryMissingCode))
		assert.Empty(t, h.store.orders)
		assert.Equal(t, 5, h.store.inventory[coffee.ID].Quantity)
	})

	t.Run("Should fail with insufficient stock when a concurrent sale drained the record", func(t *testing.T) {
		h := newHarness(t)
		cat := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)
		h.store.setStock(coffee.ID, 5)
		h.store.beforeDecrement = func(s *memStore, productID int64) {
			s.setStock(productID, 1)
		}

		_, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{{ProductID: coffee.ID, Quantity: 4}})

		assert.True(t, zerror.HasCode(err, apperr.InsufficientStockCode))
		assert.Empty(t, h.store.orders)
	})

	t.Run("Should roll back when the outbox write fails", func(t *testing.T) {
		h := newHarness(t)
		cat := h.store.addCategory("Beverages")
		coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)
		h.store.setStock(coffee.ID, 5)
		h.store.outboxErr = errors.New("outbox unavailable")

		_, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{{ProductID: coffee.ID, Quantity: 1}})

		require.Error(t, err)
		assert.Empty(t, h.store.orders)
		assert.Equal(t, 5, h.store.inventory[coffee.ID].Quantity)
	})
}

func TestOrderRetrieval(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	cat := h.store.addCategory("Beverages")
	coffee := h.store.addProduct("BEV-001", "Coffee", cat.ID, "3.50", true)
	h.store.setStock(coffee.ID, 50)

	var ids []int64
	for range 3 {
		order, err := h.orders.CreateOrder(ctx, cashierID, []model.BasketLine{{ProductID: coffee.ID, Quantity: 1}})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	t.Run("Should list newest first with pagination", func(t *testing.T) {
		orders, err := h.orders.ListOrders(ctx, model.OrderFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, ids[2], orders[0].ID)
		assert.Equal(t, ids[1], orders[1].ID)

		orders, err = h.orders.ListOrders(ctx, model.OrderFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, ids[0], orders[0].ID)
	})

	t.Run("Should return not found for an unknown order", func(t *testing.T) {
		_, err := h.orders.GetOrder(ctx, 424242)
		assert.True(t, zerror.HasCode(err, apperr.OrderNotFoundCode))
	})

	t.Run("Should delete without restocking", func(t *testing.T) {
		require.NoError(t, h.orders.DeleteOrder(ctx, ids[0]))

		_, err := h.orders.GetOrder(ctx, ids[0])
		assert.True(t, zerror.HasCode(err, apperr.OrderNotFoundCode))
		assert.Equal(t, 47, h.store.inventory[coffee.ID].Quantity)

		err = h.orders.DeleteOrder(ctx, ids[0])
		assert.True(t, zerror.HasCode(err, apperr.OrderNotFoundCode))
	})
}
