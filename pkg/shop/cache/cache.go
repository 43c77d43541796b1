// Package cache decorates a shop repository with a Redis read-through
// cache for the get-by-id lookups. Mutations invalidate the entity's key
// before anything else can read it stale. Cache failures are never fatal;
// the store remains the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"orderdesk/pkg/shop"
)

// Repository wraps another repository with Redis caching.
type Repository struct {
	next shop.Repository
	rdb  *redis.Client
	ttl  time.Duration
}

// New creates a caching repository. Entries expire after ttl.
func New(next shop.Repository, rdb *redis.Client, ttl time.Duration) *Repository {
	return &Repository{next: next, rdb: rdb, ttl: ttl}
}

func customerKey(id int64) string { return "customer:" + shop.FormatID(id) }
func itemKey(id int64) string     { return "item:" + shop.FormatID(id) }
func orderKey(id int64) string    { return "order:" + shop.FormatID(id) }

func (r *Repository) lookup(ctx context.Context, key string, dst any) bool {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (r *Repository) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	r.rdb.Set(ctx, key, raw, r.ttl)
}

func (r *Repository) invalidate(ctx context.Context, keys ...string) {
	r.rdb.Del(ctx, keys...)
}

// CreateCustomer passes through; nothing can be cached under a fresh id.
func (r *Repository) CreateCustomer(ctx context.Context, c shop.Customer) (shop.Customer, error) {
	return r.next.CreateCustomer(ctx, c)
}

// GetCustomer serves from Redis when possible.
func (r *Repository) GetCustomer(ctx context.Context, id int64) (shop.Customer, error) {
	var c shop.Customer
	if r.lookup(ctx, customerKey(id), &c) {
		return c, nil
	}
	c, err := r.next.GetCustomer(ctx, id)
	if err != nil {
		return shop.Customer{}, err
	}
	r.store(ctx, customerKey(id), c)
	return c, nil
}

// UpdateCustomer writes through and drops the cached entry.
func (r *Repository) UpdateCustomer(ctx context.Context, c shop.Customer) error {
	if err := r.next.UpdateCustomer(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, customerKey(c.ID))
	return nil
}

// DeleteCustomer writes through and drops the cached entry.
func (r *Repository) DeleteCustomer(ctx context.Context, id int64) error {
	if err := r.next.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, customerKey(id))
	return nil
}

// CreateItem passes through.
func (r *Repository) CreateItem(ctx context.Context, it shop.Item) (shop.Item, error) {
	return r.next.CreateItem(ctx, it)
}

// GetItem serves from Redis when possible.
func (r *Repository) GetItem(ctx context.Context, id int64) (shop.Item, error) {
	var it shop.Item
	if r.lookup(ctx, itemKey(id), &it) {
		return it, nil
	}
	it, err := r.next.GetItem(ctx, id)
	if err != nil {
		return shop.Item{}, err
	}
	r.store(ctx, itemKey(id), it)
	return it, nil
}

// UpdateItem writes through and drops the cached entry.
func (r *Repository) UpdateItem(ctx context.Context, it shop.Item) error {
	if err := r.next.UpdateItem(ctx, it); err != nil {
		return err
	}
	r.invalidate(ctx, itemKey(it.ID))
	return nil
}

// DeleteItem writes through and drops the cached entry.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	if err := r.next.DeleteItem(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, itemKey(id))
	return nil
}

// CreateOrder passes through.
func (r *Repository) CreateOrder(ctx context.Context, o shop.Order) (shop.Order, error) {
	return r.next.CreateOrder(ctx, o)
}

// GetOrder serves from Redis when possible.
func (r *Repository) GetOrder(ctx context.Context, id int64) (shop.Order, error) {
	var o shop.Order
	if r.lookup(ctx, orderKey(id), &o) {
		return o, nil
	}
	o, err := r.next.GetOrder(ctx, id)
	if err != nil {
		return shop.Order{}, err
	}
	r.store(ctx, orderKey(id), o)
	return o, nil
}

// UpdateOrder writes through and drops the cached entry.
func (r *Repository) UpdateOrder(ctx context.Context, o shop.Order) error {
	if err := r.next.UpdateOrder(ctx, o); err != nil {
		return err
	}
	r.invalidate(ctx, orderKey(o.ID))
	return nil
}

// DeleteOrder writes through and drops the cached entry.
func (r *Repository) DeleteOrder(ctx context.Context, id int64) error {
	if err := r.next.DeleteOrder(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, orderKey(id))
	return nil
}

// AddOrderItem passes through; join rows are never cached.
func (r *Repository) AddOrderItem(ctx context.Context, orderID, itemID int64) error {
	return r.next.AddOrderItem(ctx, orderID, itemID)
}

// ListOrderItems passes through; join rows are never cached.
func (r *Repository) ListOrderItems(ctx context.Context, orderID int64) ([]shop.Item, error) {
	return r.next.ListOrderItems(ctx, orderID)
}

// RemoveOrderItem passes through; join rows are never cached.
func (r *Repository) RemoveOrderItem(ctx context.Context, orderID, itemID int64) error {
	return r.next.RemoveOrderItem(ctx, orderID, itemID)
}

// Seed passes through. Seeding only creates rows, so cached entries for
// existing ids stay valid.
func (r *Repository) Seed(ctx context.Context, records []shop.SeedRecord) (shop.SeedStats, error) {
	return r.next.Seed(ctx, records)
}
