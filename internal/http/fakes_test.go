package http_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/auth"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
)

var fixedTime = time.Date(2025, 12, 28, 9, 30, 0, 0, time.UTC)

type fakeHealth struct{ healthy bool }

func (f fakeHealth) IsHealthy(context.Context) (bool, error) { return f.healthy, nil }

// fakeUserSvc authenticates the tokens "admin" and "cashier".
type fakeUserSvc struct {
	created []service.CreateUserParams
}

var (
	adminUser   = model.User{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin, IsActive: true, CreatedAt: fixedTime}
	cashierUser = model.User{ID: 2, Email: "cashier@example.com", Role: model.RoleCashier, IsActive: true, CreatedAt: fixedTime}
)

func (f *fakeUserSvc) CreateUser(_ context.Context, params service.CreateUserParams) (model.User, error) {
	f.created = append(f.created, params)
	return model.User{ID: 3, Email: params.Email, Role: params.Role, IsActive: true, CreatedAt: fixedTime}, nil
}

func (f *fakeUserSvc) GetUser(_ context.Context, id int64) (model.User, error) {
	switch id {
	case adminUser.ID:
		return adminUser, nil
	case cashierUser.ID:
		return cashierUser, nil
	}
	return model.User{}, apperr.UserNotFoundErr
}

func (f *fakeUserSvc) Login(_ context.Context, email, password string) (service.LoginResult, error) {
	if email != cashierUser.Email || password != "cashier123" {
		return service.LoginResult{}, apperr.InvalidCredentialsErr
	}
	return service.LoginResult{
		Token: auth.Token{AccessToken: "cashier", ExpiresAt: fixedTime.Add(time.Hour)},
		User:  cashierUser,
	}, nil
}

func (f *fakeUserSvc) Authenticate(_ context.Context, accessToken string) (model.User, error) {
	switch accessToken {
	case "admin":
		return adminUser, nil
	case "cashier":
		return cashierUser, nil
	}
	return model.User{}, apperr.UnauthorizedErr
}

type fakeCategorySvc struct {
	deleted []int64
}

func (f *fakeCategorySvc) ListCategories(context.Context) ([]model.Category, error) {
	return []model.Category{{ID: 1, Name: "Beverages", IsActive: true, CreatedAt: fixedTime}}, nil
}

func (f *fakeCategorySvc) GetCategory(_ context.Context, id int64) (model.Category, error) {
	if id != 1 {
		return model.Category{}, apperr.CategoryNotFoundErr
	}
	return model.Category{ID: 1, Name: "Beverages", IsActive: true, CreatedAt: fixedTime}, nil
}

func (f *fakeCategorySvc) CreateCategory(_ context.Context, params service.CreateCategoryParams) (model.Category, error) {
	return model.Category{ID: 2, Name: params.Name, IsActive: params.IsActive, CreatedAt: fixedTime}, nil
}

func (f *fakeCategorySvc) UpdateCategory(_ context.Context, id int64, patch model.CategoryPatch) (model.Category, error) {
	c := model.Category{ID: id, Name: "Beverages", IsActive: true, CreatedAt: fixedTime}
	patch.Apply(&c)
	return c, nil
}

func (f *fakeCategorySvc) DeleteCategory(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeProductSvc struct {
	filter  model.ProductFilter
	created service.CreateProductParams
}

func (f *fakeProductSvc) ListProducts(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	f.filter = filter
	return []model.Product{coffee()}, nil
}

func (f *fakeProductSvc) GetProduct(_ context.Context, id int64) (model.Product, error) {
	if id != coffee().ID {
		return model.Product{}, apperr.ProductNotFoundErr
	}
	return coffee(), nil
}

func (f *fakeProductSvc) CreateProduct(_ context.Context, params service.CreateProductParams) (model.Product, error) {
	f.created = params
	return model.Product{
		ID:         11,
		Sku:        params.Sku,
		Name:       params.Name,
		CategoryID: params.CategoryID,
		Price:      model.RoundMoney(params.Price),
		IsActive:   params.IsActive,
		CreatedAt:  fixedTime,
	}, nil
}

func (f *fakeProductSvc) UpdateProduct(_ context.Context, _ int64, patch model.ProductPatch) (model.Product, error) {
	p := coffee()
	patch.Apply(&p)
	return p, nil
}

func (f *fakeProductSvc) DeleteProduct(context.Context, int64) error { return nil }

func coffee() model.Product {
	return model.Product{
		ID:         10,
		Sku:        "BEV-001",
		Name:       "Coffee",
		CategoryID: 1,
		Price:      decimal.RequireFromString("3.5"),
		IsActive:   true,
		CreatedAt:  fixedTime,
	}
}

type fakeInventorySvc struct{}

func (fakeInventorySvc) ListInventory(context.Context) ([]model.InventoryRecord, error) {
	return []model.InventoryRecord{{ProductID: 10, Quantity: 5, UpdatedAt: fixedTime}}, nil
}

func (fakeInventorySvc) GetInventory(_ context.Context, productID int64) (model.InventoryRecord, error) {
	return model.InventoryRecord{ProductID: productID, Quantity: 5, UpdatedAt: fixedTime}, nil
}

func (fakeInventorySvc) SetQuantity(_ context.Context, productID int64, quantity int) (model.InventoryRecord, error) {
	if quantity < 0 {
		return model.InventoryRecord{}, apperr.NegativeQuantityErr
	}
	return model.InventoryRecord{ProductID: productID, Quantity: quantity, UpdatedAt: fixedTime}, nil
}

type fakeOrderSvc struct {
	createdBy int64
	basket    []model.BasketLine
	filter    model.OrderFilter
	err       error
}

func (f *fakeOrderSvc) CreateOrder(_ context.Context, createdBy int64, basket []model.BasketLine) (model.Order, error) {
	f.createdBy = createdBy
	f.basket = basket
	if f.err != nil {
		return model.Order{}, f.err
	}
	return sampleOrder(createdBy), nil
}

func (f *fakeOrderSvc) GetOrder(_ context.Context, id int64) (model.Order, error) {
	if id != 100 {
		return model.Order{}, apperr.OrderNotFoundErr
	}
	return sampleOrder(2), nil
}

func (f *fakeOrderSvc) ListOrders(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	f.filter = filter
	return []model.Order{sampleOrder(2)}, nil
}

func (f *fakeOrderSvc) DeleteOrder(context.Context, int64) error { return nil }

func sampleOrder(createdBy int64) model.Order {
	return model.Order{
		ID:          100,
		CreatedBy:   createdBy,
		TotalAmount: decimal.RequireFromString("7"),
		CreatedAt:   fixedTime,
		Lines: []model.OrderLine{{
			ID:        1000,
			OrderID:   100,
			ProductID: 10,
			UnitPrice: decimal.RequireFromString("3.5"),
			Quantity:  2,
			LineTotal: decimal.RequireFromString("7"),
		}},
	}
}

type fakeReportSvc struct {
	date time.Time
}

func (f *fakeReportSvc) DailyReport(_ context.Context, date time.Time) (model.DailyReport, error) {
	f.date = date
	start, _ := model.DayWindow(date)
	return model.DailyReport{Date: start, TotalAmount: decimal.Zero}, nil
}
