package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/auth"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/config"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type product struct {
	sku      string
	name     string
	category string
	price    string
}

var (
	categories = []string{"Beverages", "Snacks", "Essentials"}

	products = []product{
		{"BEV-001", "Coffee", "Beverages", "3.50"},
		{"BEV-002", "Tea", "Beverages", "2.75"},
		{"BEV-003", "Orange Juice", "Beverages", "4.00"},
		{"SNK-001", "Chips", "Snacks", "1.99"},
		{"SNK-002", "Chocolate Bar", "Snacks", "1.50"},
		{"SNK-003", "Granola Bar", "Snacks", "1.25"},
		{"ESS-001", "Milk", "Essentials", "2.10"},
		{"ESS-002", "Bread", "Essentials", "2.50"},
		{"ESS-003", "Eggs", "Essentials", "3.20"},
		{"ESS-004", "Butter", "Essentials", "3.80"},
	}
)

// Seeder fills an empty database with demo users, catalog and stock. Rows that already exist are
// left as they are, so running it twice is harmless.
type Seeder struct {
	cfg           config.Seed
	logger        *slog.Logger
	db            db.DB
	userRepo      repository.UserRepository
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

func New(
	cfg config.Seed,
	logger *slog.Logger,
	db db.DB,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
) *Seeder {
	return &Seeder{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "seed")),
		db:            db,
		userRepo:      userRepo,
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	return s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.seedUser(ctx, db, s.cfg.AdminEmail, s.cfg.AdminPassword, model.RoleAdmin); err != nil {
			return err
		}
		if err := s.seedUser(ctx, db, s.cfg.CashierEmail, s.cfg.CashierPassword, model.RoleCashier); err != nil {
			return err
		}

		categoryIDs, err := s.seedCategories(ctx, db)
		if err != nil {
			return err
		}

		return s.seedProducts(ctx, db, categoryIDs)
	})
}

func (s *Seeder) seedUser(ctx context.Context, db db.DB, email, password string, role model.Role) error {
	userRepo := s.userRepo.WithDB(db)

	_, err := userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("userRepo get user by email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := userRepo.CreateUser(ctx, model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("userRepo create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created", slog.String("email", user.Email), slog.String("role", string(role)))
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context, db db.DB) (map[string]int64, error) {
	categoryRepo := s.categoryRepo.WithDB(db)

	existing, err := categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categoryRepo list categories: %w", err)
	}

	ids := make(map[string]int64, len(categories))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	for _, name := range categories {
		if _, ok := ids[name]; ok {
			continue
		}

		category, err := categoryRepo.CreateCategory(ctx, model.Category{Name: name, IsActive: true})
		if err != nil {
			return nil, fmt.Errorf("categoryRepo create category %s: %w", name, err)
		}
		ids[name] = category.ID

		s.logger.InfoContext(ctx, "category created", slog.String("name", name))
	}

	return ids, nil
}

func (s *Seeder) seedProducts(ctx context.Context, db db.DB, categoryIDs map[string]int64) error {
	productRepo := s.productRepo.WithDB(db)
	inventoryRepo := s.inventoryRepo.WithDB(db)

	for _, p := range products {
		product, err := productRepo.GetProductBySku(ctx, p.sku)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			product, err = productRepo.CreateProduct(ctx, model.Product{
				Sku:        p.sku,
				Name:       p.name,
				CategoryID: categoryIDs[p.category],
				Price:      decimal.RequireFromString(p.price),
				IsActive:   true,
			})
			if err != nil {
				return fmt.Errorf("productRepo create product %s: %w", p.sku, err)
			}
			s.logger.InfoContext(ctx, "product created", slog.String("sku", p.sku))
		case err != nil:
			return fmt.Errorf("productRepo get product by sku %s: %w", p.sku, err)
		}

		_, err = inventoryRepo.GetInventory(ctx, product.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("inventoryRepo get inventory %d: %w", product.ID, err)
		}

		if _, err := inventoryRepo.UpsertInventory(ctx, product.ID, s.cfg.StockQuantity); err != nil {
			return fmt.Errorf("inventoryRepo upsert inventory %d: %w", product.ID, err)
		}
	}

	return nil
}
