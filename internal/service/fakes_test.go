package service_test

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

// memStore is the in-memory state behind the fake repositories.
type memStore struct {
	nextID     int64
	users      map[int64]model.User
	categories map[int64]model.Category
	products   map[int64]model.Product
	inventory  map[int64]model.InventoryRecord
	orders     map[int64]model.Order
	outbox     []repository.CreateOutboxMsgParams

	now func() time.Time

	// hooks
	beforeDecrement func(s *memStore, productID int64)
	outboxErr       error
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]model.User{},
		categories: map[int64]model.Category{},
		products:   map[int64]model.Product{},
		inventory:  map[int64]model.InventoryRecord{},
		orders:     map[int64]model.Order{},
		now:        func() time.Time { return time.Date(2025, 12, 28, 10, 0, 0, 0, time.UTC) },
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) snapshot() *memStore {
	c := *s
	c.users = maps.Clone(s.users)
	c.categories = maps.Clone(s.categories)
	c.products = maps.Clone(s.products)
	c.inventory = maps.Clone(s.inventory)
	c.orders = maps.Clone(s.orders)
	c.outbox = slices.Clone(s.outbox)
	return &c
}

func (s *memStore) restore(snap *memStore) {
	s.nextID = snap.nextID
	s.users = snap.users
	s.categories = snap.categories
	s.products = snap.products
	s.inventory = snap.inventory
	s.orders = snap.orders
	s.outbox = snap.outbox
}

func (s *memStore) topics() []string {
	topics := make([]string, 0, len(s.outbox))
	for _, msg := range s.outbox {
		topics = append(topics, msg.Topic)
	}
	return topics
}

func (s *memStore) addCategory(name string) model.Category {
	c := model.Category{ID: s.id(), Name: name, IsActive: true, CreatedAt: s.now()}
	s.categories[c.ID] = c
	return c
}

func (s *memStore) addProduct(sku, name string, categoryID int64, price string, active bool) model.Product {
	p := model.Product{
		ID:         s.id(),
		Sku:        sku,
		Name:       name,
		CategoryID: categoryID,
		Price:      decimal.RequireFromString(price),
		IsActive:   active,
		CreatedAt:  s.now(),
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) setStock(productID int64, quantity int) {
	s.inventory[productID] = model.InventoryRecord{ProductID: productID, Quantity: quantity, UpdatedAt: s.now()}
}

// fakeDB runs transactions against memStore and restores the pre-transaction state on error.
type fakeDB struct {
	db.DB
	store *memStore
}

func (d *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	snap := d.store.snapshot()
	if err := txFunc(d); err != nil {
		d.store.restore(snap)
		return err
	}
	return nil
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) WithDB(db.DB) repository.UserRepository { return r }

func (r *fakeUserRepo) CreateUser(_ context.Context, user model.User) (model.User, error) {
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return model.User{}, repository.ErrDuplicate
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (model.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

type fakeCategoryRepo struct{ s *memStore }

func (r *fakeCategoryRepo) WithDB(db.DB) repository.CategoryRepository { return r }

func (r *fakeCategoryRepo) CreateCategory(_ context.Context, category model.Category) (model.Category, error) {
	if r.nameTaken(category.Name, 0) {
		return model.Category{}, repository.ErrDuplicate
	}
	category.ID = r.s.id()
	category.CreatedAt = r.s.now()
	r.s.categories[category.ID] = category
	return category, nil
}

func (r *fakeCategoryRepo) GetCategory(_ context.Context, id int64) (model.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) ListCategories(context.Context) ([]model.Category, error) {
	return sortedByID(slices.Collect(maps.Values(r.s.categories)), func(c model.Category) int64 { return c.ID }), nil
}

func (r *fakeCategoryRepo) UpdateCategory(_ context.Context, category model.Category) (model.Category, error) {
	if _, ok := r.s.categories[category.ID]; !ok {
		return model.Category{}, repository.ErrNotFound
	}
	if r.nameTaken(category.Name, category.ID) {
		return model.Category{}, repository.ErrDuplicate
	}
	r.s.categories[category.ID] = category
	return category, nil
}

func (r *fakeCategoryRepo) nameTaken(name string, except int64) bool {
	for _, c := range r.s.categories {
		if c.Name == name && c.ID != except {
			return true
		}
	}
	return false
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, product model.Product) (model.Product, error) {
	for _, p := range r.s.products {
		if p.Sku == product.Sku {
			return model.Product{}, repository.ErrDuplicate
		}
	}
	product.ID = r.s.id()
	product.CreatedAt = r.s.now()
	r.s.products[product.ID] = product
	return product, nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id int64) (model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetProductBySku(_ context.Context, sku string) (model.Product, error) {
	for _, p := range r.s.products {
		if p.Sku == sku {
			return p, nil
		}
	}
	return model.Product{}, repository.ErrNotFound
}

func (r *fakeProductRepo) GetProductsByIDs(_ context.Context, ids []int64) ([]model.Product, error) {
	var products []model.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) ListProducts(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var products []model.Product
	for _, p := range r.s.products {
		if !p.IsActive {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		products = append(products, p)
	}
	return sortedByID(products, func(p model.Product) int64 { return p.ID }), nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, product model.Product) (model.Product, error) {
	if _, ok := r.s.products[product.ID]; !ok {
		return model.Product{}, repository.ErrNotFound
	}
	r.s.products[product.ID] = product
	return product, nil
}

type fakeInventoryRepo struct{ s *memStore }

func (r *fakeInventoryRepo) WithDB(db.DB) repository.InventoryRepository { return r }

func (r *fakeInventoryRepo) ListInventory(context.Context) ([]model.InventoryRecord, error) {
	return sortedByID(slices.Collect(maps.Values(r.s.inventory)), func(rec model.InventoryRecord) int64 { return rec.ProductID }), nil
}

func (r *fakeInventoryRepo) GetInventory(_ context.Context, productID int64) (model.InventoryRecord, error) {
	rec, ok := r.s.inventory[productID]
	if !ok {
		return model.InventoryRecord{}, repository.ErrNotFound
	}
	return rec, nil
}

func (r *fakeInventoryRepo) GetInventoryByProductIDs(_ context.Context, productIDs []int64) ([]model.InventoryRecord, error) {
	var records []model.InventoryRecord
	for _, id := range productIDs {
		if rec, ok := r.s.inventory[id]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *fakeInventoryRepo) UpsertInventory(_ context.Context, productID int64, quantity int) (model.InventoryRecord, error) {
	r.s.setStock(productID, quantity)
	return r.s.inventory[productID], nil
}

func (r *fakeInventoryRepo) DecrementInventory(_ context.Context, productID int64, quantity int) (model.InventoryRecord, error) {
	if r.s.beforeDecrement != nil {
		r.s.beforeDecrement(r.s, productID)
	}
	rec, ok := r.s.inventory[productID]
	if !ok {
		return model.InventoryRecord{}, repository.ErrNotFound
	}
	if rec.Quantity < quantity {
		return model.InventoryRecord{}, repository.ErrInsufficientQuantity
	}
	rec.Quantity -= quantity
	rec.UpdatedAt = r.s.now()
	r.s.inventory[productID] = rec
	return rec, nil
}

func (r *fakeInventoryRepo) DeleteInventory(_ context.Context, productID int64) error {
	delete(r.s.inventory, productID)
	return nil
}

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) WithDB(db.DB) repository.OrderRepository { return r }

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order model.Order) (model.Order, error) {
	order.ID = r.s.id()
	order.CreatedAt = r.s.now()
	lines := make([]model.OrderLine, len(order.Lines))
	for i, line := range order.Lines {
		line.ID = r.s.id()
		line.OrderID = order.ID
		lines[i] = line
	}
	order.Lines = lines
	r.s.orders[order.ID] = order
	return order, nil
}

func (r *fakeOrderRepo) GetOrder(_ context.Context, id int64) (model.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return model.Order{}, repository.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) ListOrders(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var orders []model.Order
	for _, o := range r.s.orders {
		if filter.From != nil && o.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && o.CreatedAt.After(*filter.To) {
			continue
		}
		orders = append(orders, o)
	}
	slices.SortFunc(orders, func(a, b model.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if filter.Offset >= len(orders) {
		return nil, nil
	}
	orders = orders[filter.Offset:]
	if len(orders) > filter.Limit {
		orders = orders[:filter.Limit]
	}
	return orders, nil
}

func (r *fakeOrderRepo) DeleteOrder(_ context.Context, id int64) error {
	if _, ok := r.s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

type fakeReportRepo struct{ s *memStore }

func (r *fakeReportRepo) WithDB(db.DB) repository.ReportRepository { return r }

func (r *fakeReportRepo) inWindow(o model.Order, start, end time.Time) bool {
	return !o.CreatedAt.Before(start) && o.CreatedAt.Before(end)
}

func (r *fakeReportRepo) GetOrderStats(_ context.Context, start, end time.Time) (repository.OrderStats, error) {
	stats := repository.OrderStats{TotalAmount: decimal.Zero}
	for _, o := range r.s.orders {
		if !r.inWindow(o, start, end) {
			continue
		}
		stats.OrderCount++
		stats.TotalAmount = stats.TotalAmount.Add(o.TotalAmount)
	}
	return stats, nil
}

func (r *fakeReportRepo) ListTopProducts(_ context.Context, start, end time.Time, limit int) ([]model.TopProduct, error) {
	byProduct := map[int64]model.TopProduct{}
	for _, o := range r.s.orders {
		if !r.inWindow(o, start, end) {
			continue
		}
		for _, line := range o.Lines {
			tp, ok := byProduct[line.ProductID]
			if !ok {
				tp = model.TopProduct{ProductID: line.ProductID, Name: r.s.products[line.ProductID].Name, Total: decimal.Zero}
			}
			tp.Quantity += int64(line.Quantity)
			tp.Total = tp.Total.Add(line.LineTotal)
			byProduct[line.ProductID] = tp
		}
	}
	top := slices.Collect(maps.Values(byProduct))
	slices.SortFunc(top, func(a, b model.TopProduct) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

type fakeOutboxMsgRepo struct{ s *memStore }

func (r *fakeOutboxMsgRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxMsgRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	if r.s.outboxErr != nil {
		return r.s.outboxErr
	}
	r.s.outbox = append(r.s.outbox, params)
	return nil
}

func (r *fakeOutboxMsgRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxMsgRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

func sortedByID[T any](items []T, id func(T) int64) []T {
	slices.SortFunc(items, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return items
}
