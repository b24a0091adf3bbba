package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Sku is unique among every product ever created, soft deleted ones
// included, and does not change after creation.
type Product struct {
	ID         int64
	Sku        string
	Name       string
	CategoryID int64
	Price      decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
}

// ProductPatch holds the caller supplied subset of product fields. Nil fields are left untouched.
type ProductPatch struct {
	Name       *string
	CategoryID *int64
	Price      *decimal.Decimal
	IsActive   *bool
}

// Apply merges the non-nil fields of p into product.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.CategoryID != nil {
		product.CategoryID = *p.CategoryID
	}
	if p.Price != nil {
		product.Price = RoundMoney(*p.Price)
	}
	if p.IsActive != nil {
		product.IsActive = *p.IsActive
	}
}

type ProductFilter struct {
	Query      string
	CategoryID *int64
}
