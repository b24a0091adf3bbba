package apperr

import "github.com/tuanvumaihuynh/pos-backoffice/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"

	OrderNoItemsCode     = "ORDER_NO_ITEMS"
	InvalidQuantityCode  = "INVALID_QUANTITY"
	NegativeQuantityCode = "NEGATIVE_QUANTITY"
	NegativePriceCode    = "NEGATIVE_PRICE"
	PriceTooHighCode     = "PRICE_TOO_HIGH"

	ProductNotFoundCode   = "PRODUCT_NOT_FOUND"
	CategoryNotFoundCode  = "CATEGORY_NOT_FOUND"
	OrderNotFoundCode     = "ORDER_NOT_FOUND"
	InventoryNotFoundCode = "INVENTORY_NOT_FOUND"
	UserNotFoundCode      = "USER_NOT_FOUND"

	InsufficientStockCode = "INSUFFICIENT_STOCK"
	InventoryMissingCode  = "INVENTORY_MISSING"
	SkuTakenCode          = "SKU_TAKEN"
	CategoryNameTakenCode = "CATEGORY_NAME_TAKEN"
	EmailTakenCode        = "EMAIL_TAKEN"

	InvalidCredentialsCode = "INVALID_CREDENTIALS"
	UnauthorizedCode       = "UNAUTHORIZED"
	ForbiddenCode          = "FORBIDDEN"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	OrderNoItemsErr     = zerror.NewUnprocessableEntity(OrderNoItemsCode, "no items provided")
	InvalidQuantityErr  = zerror.NewUnprocessableEntity(InvalidQuantityCode, "quantity must be a positive integer")
	NegativeQuantityErr = zerror.NewUnprocessableEntity(NegativeQuantityCode, "quantity must be non-negative")
	NegativePriceErr    = zerror.NewUnprocessableEntity(NegativePriceCode, "price must be non-negative")
	PriceTooHighErr     = zerror.NewUnprocessableEntity(PriceTooHighCode, "price must not exceed 99999999.99")

	ProductNotFoundErr   = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	CategoryNotFoundErr  = zerror.NewNotFound(CategoryNotFoundCode, "category not found")
	OrderNotFoundErr     = zerror.NewNotFound(OrderNotFoundCode, "order not found")
	InventoryNotFoundErr = zerror.NewNotFound(InventoryNotFoundCode, "inventory record not found")
	UserNotFoundErr      = zerror.NewNotFound(UserNotFoundCode, "user not found")

	InsufficientStockErr = zerror.NewConflict(InsufficientStockCode, "insufficient stock")
	InventoryMissingErr  = zerror.NewConflict(InventoryMissingCode, "inventory missing")
	SkuTakenErr          = zerror.NewConflict(SkuTakenCode, "sku already exists")
	CategoryNameTakenErr = zerror.NewConflict(CategoryNameTakenCode, "category name already exists")
	EmailTakenErr        = zerror.NewConflict(EmailTakenCode, "email already registered")

	InvalidCredentialsErr = zerror.NewUnauthorized(InvalidCredentialsCode, "invalid credentials")
	UnauthorizedErr       = zerror.NewUnauthorized(UnauthorizedCode, "invalid or missing token")
	ForbiddenErr          = zerror.NewForbidden(ForbiddenCode, "forbidden")
)
