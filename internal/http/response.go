package http

import (
	"time"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
)

// Money fields are rendered as strings with two fractional digits.

type userResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type categoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

type productResponse struct {
	ID         int64     `json:"id"`
	Sku        string    `json:"sku"`
	Name       string    `json:"name"`
	CategoryID int64     `json:"category_id"`
	Price      string    `json:"price"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:         p.ID,
		Sku:        p.Sku,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      model.FormatMoney(p.Price),
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
	}
}

type inventoryResponse struct {
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toInventoryResponse(rec model.InventoryRecord) inventoryResponse {
	return inventoryResponse{
		ProductID: rec.ProductID,
		Quantity:  rec.Quantity,
		UpdatedAt: rec.UpdatedAt,
	}
}

type orderItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type orderResponse struct {
	ID          int64               `json:"id"`
	CreatedBy   int64               `json:"created_by"`
	TotalAmount string              `json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []orderItemResponse `json:"items"`
}

func toOrderResponse(o model.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		items = append(items, orderItemResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			UnitPrice: model.FormatMoney(line.UnitPrice),
			Quantity:  line.Quantity,
			LineTotal: model.FormatMoney(line.LineTotal),
		})
	}

	return orderResponse{
		ID:          o.ID,
		CreatedBy:   o.CreatedBy,
		TotalAmount: model.FormatMoney(o.TotalAmount),
		CreatedAt:   o.CreatedAt,
		Items:       items,
	}
}

type topProductResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Total     string `json:"total"`
}

type dailyReportResponse struct {
	Date        string               `json:"date"`
	OrderCount  int64                `json:"order_count"`
	TotalAmount string               `json:"total_amount"`
	TopProducts []topProductResponse `json:"top_products"`
}

func toDailyReportResponse(r model.DailyReport) dailyReportResponse {
	top := make([]topProductResponse, 0, len(r.TopProducts))
	for _, p := range r.TopProducts {
		top = append(top, topProductResponse{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Total:     model.FormatMoney(p.Total),
		})
	}

	return dailyReportResponse{
		Date:        r.Date.Format(time.DateOnly),
		OrderCount:  r.OrderCount,
		TotalAmount: model.FormatMoney(r.TotalAmount),
		TopProducts: top,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
