package service_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/auth"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/config"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
)

type harness struct {
	store     *memStore
	orders    service.OrderService
	products  service.ProductService
	category  service.CategoryService
	inventory service.InventoryService
	reports   service.ReportService
	users     service.UserService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := newMemStore()
	fdb := &fakeDB{store: store}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := &fakeUserRepo{s: store}
	categoryRepo := &fakeCategoryRepo{s: store}
	productRepo := &fakeProductRepo{s: store}
	inventoryRepo := &fakeInventoryRepo{s: store}
	orderRepo := &fakeOrderRepo{s: store}
	reportRepo := &fakeReportRepo{s: store}
	outboxRepo := &fakeOutboxMsgRepo{s: store}

	tokenIssuer := auth.NewTokenIssuer(config.Auth{
		JWTSecret: "test-secret",
		JWTTTL:    time.Hour,
		JWTIssuer: "pos-backoffice",
	})

	return &harness{
		store:     store,
		orders:    service.NewOrderService(logger, fdb, productRepo, inventoryRepo, orderRepo, outboxRepo),
		products:  service.NewProductService(fdb, productRepo, categoryRepo, inventoryRepo, outboxRepo),
		category:  service.NewCategoryService(fdb, categoryRepo),
		inventory: service.NewInventoryService(fdb, productRepo, inventoryRepo, outboxRepo),
		reports:   service.NewReportService(reportRepo),
		users:     service.NewUserService(userRepo, tokenIssuer),
	}
}
