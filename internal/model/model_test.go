package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/ptr"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		want     string
	}{
		{name: "coffee", price: "3.50", quantity: 2, want: "7.00"},
		{name: "chips", price: "1.99", quantity: 2, want: "3.98"},
		{name: "half up", price: "0.125", quantity: 1, want: "0.13"},
		{name: "below half", price: "0.124", quantity: 1, want: "0.12"},
		{name: "multiplied then rounded", price: "0.335", quantity: 3, want: "1.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.LineTotal(decimal.RequireFromString(tt.price), tt.quantity)
			assert.Equal(t, tt.want, model.FormatMoney(got))
		})
	}
}

func TestOrderLinesTotal(t *testing.T) {
	order := model.Order{Lines: []model.OrderLine{
		{LineTotal: decimal.RequireFromString("7.00")},
		{LineTotal: decimal.RequireFromString("3.98")},
	}}

	assert.Equal(t, "10.98", model.FormatMoney(order.LinesTotal()))
	assert.Equal(t, "0.00", model.FormatMoney(model.Order{}.LinesTotal()))
}

func TestOrderFilterNormalize(t *testing.T) {
	assert.Equal(t, model.OrderFilter{Limit: 20}, model.OrderFilter{}.Normalize())
	assert.Equal(t, model.OrderFilter{Limit: 100, Offset: 0}, model.OrderFilter{Limit: 500, Offset: -3}.Normalize())
	assert.Equal(t, model.OrderFilter{Limit: 7, Offset: 14}, model.OrderFilter{Limit: 7, Offset: 14}.Normalize())
}

func TestRoleValidate(t *testing.T) {
	assert.NoError(t, model.RoleAdmin.Validate())
	assert.NoError(t, model.RoleCashier.Validate())
	assert.Error(t, model.Role("manager").Validate())
}

func TestPatches(t *testing.T) {
	t.Run("Should apply only supplied product fields", func(t *testing.T) {
		p := model.Product{Sku: "BEV-001", Name: "Coffee", CategoryID: 1, Price: decimal.RequireFromString("3.50"), IsActive: true}

		model.ProductPatch{Price: ptr.New(decimal.RequireFromString("4.005"))}.Apply(&p)

		assert.Equal(t, "Coffee", p.Name)
		assert.Equal(t, "BEV-001", p.Sku)
		assert.Equal(t, int64(1), p.CategoryID)
		assert.Equal(t, "4.01", model.FormatMoney(p.Price))
		assert.True(t, p.IsActive)
	})

	t.Run("Should apply only supplied category fields", func(t *testing.T) {
		c := model.Category{Name: "Snacks", IsActive: true}

		model.CategoryPatch{IsActive: ptr.New(false)}.Apply(&c)

		assert.Equal(t, "Snacks", c.Name)
		assert.False(t, c.IsActive)
	})
}

func TestDayWindow(t *testing.T) {
	start, end := model.DayWindow(time.Date(2025, 12, 28, 15, 4, 5, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), end)
}
