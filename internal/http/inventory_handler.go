package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

type inventoryHandler struct {
	inventorySvc service.InventoryService
	validator    validator.Validator
}

func newInventoryHandler(inventorySvc service.InventoryService, v validator.Validator) *inventoryHandler {
	return &inventoryHandler{
		inventorySvc: inventorySvc,
		validator:    v,
	}
}

type updateInventoryRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=2147483647"`
}

func (h *inventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) error {
	records, err := h.inventorySvc.ListInventory(r.Context())
	if err != nil {
		return fmt.Errorf("inventory service list inventory: %w", err)
	}

	return writeJSON(w, http.StatusOK, mapSlice(records, toInventoryResponse))
}

func (h *inventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) error {
	productID, err := pathID(r, "productID")
	if err != nil {
		return err
	}

	record, err := h.inventorySvc.GetInventory(r.Context(), productID)
	if err != nil {
		return fmt.Errorf("inventory service get inventory: %w", err)
	}

	return writeJSON(w, http.StatusOK, toInventoryResponse(record))
}

func (h *inventoryHandler) UpdateInventory(w http.ResponseWriter, r *http.Request) error {
	productID, err := pathID(r, "productID")
	if err != nil {
		return err
	}

	var body updateInventoryRequest
	if err := decodeBody(r, h.validator, &body); err != nil {
		return err
	}

	record, err := h.inventorySvc.SetQuantity(r.Context(), productID, *body.Quantity)
	if err != nil {
		return fmt.Errorf("inventory service set quantity: %w", err)
	}

	return writeJSON(w, http.StatusOK, toInventoryResponse(record))
}
