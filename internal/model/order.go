package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultOrderListLimit = 20
	MaxOrderListLimit     = 100
)

// Order is immutable once created. It exclusively owns its lines.
type Order struct {
	ID          int64
	CreatedBy   int64
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Lines       []OrderLine
}

// LinesTotal sums the line totals of o.
func (o Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

// OrderLine carries the unit price captured at sale time. It is never re-read from the product.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

// BasketLine is one requested (product, quantity) pair of an order creation call.
type BasketLine struct {
	ProductID int64
	Quantity  int
}

// OrderFilter selects orders by an inclusive creation time range with offset pagination.
type OrderFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Normalize applies the default limit, caps it at MaxOrderListLimit and clamps offset at zero.
func (f OrderFilter) Normalize() OrderFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultOrderListLimit
	}
	if f.Limit > MaxOrderListLimit {
		f.Limit = MaxOrderListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
