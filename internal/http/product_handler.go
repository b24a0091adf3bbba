package http

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

type productHandler struct {
	productSvc service.ProductService
	validator  validator.Validator
}

func newProductHandler(productSvc service.ProductService, v validator.Validator) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		validator:  v,
	}
}

type createProductRequest struct {
	Sku        string           `json:"sku" validate:"required,max=64"`
	Name       string           `json:"name" validate:"required,max=255"`
	CategoryID int64            `json:"category_id" validate:"required,gt=0"`
	Price      *decimal.Decimal `json:"price"`
	IsActive   *bool            `json:"is_active"`
}

type updateProductRequest struct {
	Name       *string          `json:"name" validate:"omitnil,min=1,max=255"`
	CategoryID *int64           `json:"category_id" validate:"omitnil,gt=0"`
	Price      *decimal.Decimal `json:"price"`
	IsActive   *bool            `json:"is_active"`
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	var filter model.ProductFilter
	var q *string
	if err := bindQuery(r, "q", &q); err != nil {
		return err
	}
	if q != nil {
		filter.Query = *q
	}
	if err := bindQuery(r, "category_id", &filter.CategoryID); err != nil {
		return err
	}

	products, err := h.productSvc.ListProducts(r.Context(), filter)
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	return writeJSON(w, http.StatusOK, mapSlice(products, toProductResponse))
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "productID")
	if err != nil {
		return err
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}

	return writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var body createProductRequest
	if err := decodeBody(r, h.validator, &body); err != nil {
		return err
	}
	if body.Price == nil {
		return apperr.ValidationErr.WithMsgf("price is required")
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Sku:        body.Sku,
		Name:       body.Name,
		CategoryID: body.CategoryID,
		Price:      *body.Price,
		IsActive:   isActive,
	})
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}

	return writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "productID")
	if err != nil {
		return err
	}

	var body updateProductRequest
	if err := decodeBody(r, h.validator, &body); err != nil {
		return err
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, model.ProductPatch{
		Name:       body.Name,
		CategoryID: body.CategoryID,
		Price:      body.Price,
		IsActive:   body.IsActive,
	})
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	return writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "productID")
	if err != nil {
		return err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
