package model

import "time"

// InventoryRecord is the quantity on hand of one product, keyed by product id.
type InventoryRecord struct {
	ProductID int64
	Quantity  int
	UpdatedAt time.Time
}
