package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

type categoryHandler struct {
	categorySvc service.CategoryService
	validator   validator.Validator
}

func newCategoryHandler(categorySvc service.CategoryService, v validator.Validator) *categoryHandler {
	return &categoryHandler{
		categorySvc: categorySvc,
		validator:   v,
	}
}

type createCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	IsActive *bool  `json:"is_active"`
}

type updateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=100"`
	IsActive *bool   `json:"is_active"`
}

func (h *categoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.categorySvc.ListCategories(r.Context())
	if err != nil {
		return fmt.Errorf("category service list categories: %w", err)
	}

	return writeJSON(w, http.StatusOK, mapSlice(categories, toCategoryResponse))
}

func (h *categoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "categoryID")
	if err != nil {
		return err
	}

	category, err := h.categorySvc.GetCategory(r.Context(), id)
	if err != nil {
		return fmt.Errorf("category service get category: %w", err)
	}

	return writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (h *categoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) error {
	var body createCategoryRequest
	if err := decodeBody(r, h.validator, &body); err != nil {
		return err
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	category, err := h.categorySvc.CreateCategory(r.Context(), service.CreateCategoryParams{
		Name:     body.Name,
		IsActive: isActive,
	})
	if err != nil {
		return fmt.Errorf("category service create category: %w", err)
	}

	return writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (h *categoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "categoryID")
	if err != nil {
		return err
	}

	var body updateCategoryRequest
	if err := decodeBody(r, h.validator, &body); err != nil {
		return err
	}

	category, err := h.categorySvc.UpdateCategory(r.Context(), id, model.CategoryPatch{
		Name:     body.Name,
		IsActive: body.IsActive,
	})
	if err != nil {
		return fmt.Errorf("category service update category: %w", err)
	}

	return writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (h *categoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "categoryID")
	if err != nil {
		return err
	}

	if err := h.categorySvc.DeleteCategory(r.Context(), id); err != nil {
		return fmt.Errorf("category service delete category: %w", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
