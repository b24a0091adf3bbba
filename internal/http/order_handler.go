package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/auth"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

type orderHandler struct {
	orderSvc  service.OrderService
	validator validator.Validator
}

func newOrderHandler(orderSvc service.OrderService, v validator.Validator) *orderHandler {
	return &orderHandler{
		orderSvc:  orderSvc,
		validator: v,
	}
}

// Quantities are checked by the order service so that an empty basket and a bad quantity get
// their own error codes.
type createOrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type createOrderRequest struct {
	Items []createOrderItem `json:"items" validate:"dive"`
}

func (h *orderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) error {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		return apperr.UnauthorizedErr
	}

	var body createOrderRequest
	if err := decodeBody(r, h.validator, &body); err != nil {
		return err
	}

	basket := make([]model.BasketLine, 0, len(body.Items))
	for _, item := range body.Items {
		basket = append(basket, model.BasketLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), p.UserID, basket)
	if err != nil {
		return fmt.Errorf("order service create order: %w", err)
	}

	return writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *orderHandler) GetOrder(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "orderID")
	if err != nil {
		return err
	}

	order, err := h.orderSvc.GetOrder(r.Context(), id)
	if err != nil {
		return fmt.Errorf("order service get order: %w", err)
	}

	return writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *orderHandler) ListOrders(w http.ResponseWriter, r *http.Request) error {
	var (
		from, to      *time.Time
		limit, offset *int
	)
	if err := bindQuery(r, "from_date", &from); err != nil {
		return err
	}
	if err := bindQuery(r, "to_date", &to); err != nil {
		return err
	}
	if err := bindQuery(r, "limit", &limit); err != nil {
		return err
	}
	if err := bindQuery(r, "offset", &offset); err != nil {
		return err
	}

	filter := model.OrderFilter{From: from, To: to}
	if limit != nil {
		if *limit < 1 || *limit > model.MaxOrderListLimit {
			return apperr.ValidationErr.WithMsgf("limit must be between 1 and %d", model.MaxOrderListLimit)
		}
		filter.Limit = *limit
	}
	if offset != nil {
		if *offset < 0 {
			return apperr.ValidationErr.WithMsgf("offset must be non-negative")
		}
		filter.Offset = *offset
	}

	orders, err := h.orderSvc.ListOrders(r.Context(), filter)
	if err != nil {
		return fmt.Errorf("order service list orders: %w", err)
	}

	return writeJSON(w, http.StatusOK, mapSlice(orders, toOrderResponse))
}

func (h *orderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "orderID")
	if err != nil {
		return err
	}

	if err := h.orderSvc.DeleteOrder(r.Context(), id); err != nil {
		return fmt.Errorf("order service delete order: %w", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
