// Package memory implements an in-memory shop repository. It enforces the
// same referential rules as the Postgres store (customer-delete guard,
// cascade delete of join rows, seed dedup) so handler tests exercise real
// semantics without a database.
package memory

import (
	"context"
	"sync"

	"orderdesk/pkg/shop"
)

type link struct {
	orderID int64
	itemID  int64
}

// Repository provides an in-memory implementation of shop.Repository.
type Repository struct {
	mu        sync.RWMutex
	customers map[int64]shop.Customer
	items     map[int64]shop.Item
	orders    map[int64]shop.Order
	links     []link

	nextCustomer int64
	nextItem     int64
	nextOrder    int64
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{
		customers: make(map[int64]shop.Customer),
		items:     make(map[int64]shop.Item),
		orders:    make(map[int64]shop.Order),
	}
}

// CreateCustomer stores a new customer under the next free id.
func (r *Repository) CreateCustomer(ctx context.Context, c shop.Customer) (shop.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextCustomer++
	c.ID = r.nextCustomer
	r.customers[c.ID] = c
	return c, nil
}

// GetCustomer retrieves a customer by id.
func (r *Repository) GetCustomer(ctx context.Context, id int64) (shop.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return shop.Customer{}, shop.ErrNotFound
	}
	return c, nil
}

// UpdateCustomer replaces an existing customer.
func (r *Repository) UpdateCustomer(ctx context.Context, c shop.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID]; !ok {
		return shop.ErrNotFound
	}
	r.customers[c.ID] = c
	return nil
}

// DeleteCustomer removes a customer unless orders still reference it.
func (r *Repository) DeleteCustomer(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.CustomerID == id {
			return shop.ErrCustomerHasOrders
		}
	}
	delete(r.customers, id)
	return nil
}

// CreateItem stores a new item. Duplicate names are allowed.
func (r *Repository) CreateItem(ctx context.Context, it shop.Item) (shop.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextItem++
	it.ID = r.nextItem
	r.items[it.ID] = it
	return it, nil
}

// GetItem retrieves an item by id.
func (r *Repository) GetItem(ctx context.Context, id int64) (shop.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return shop.Item{}, shop.ErrNotFound
	}
	return it, nil
}

// UpdateItem replaces an existing item.
func (r *Repository) UpdateItem(ctx context.Context, it shop.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return shop.ErrNotFound
	}
	r.items[it.ID] = it
	return nil
}

// DeleteItem removes an item and cascades its join rows away.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	r.links = dropLinks(r.links, func(l link) bool { return l.itemID == id })
	return nil
}

// CreateOrder stores a new order after checking the customer reference,
// matching the foreign key the Postgres store relies on.
func (r *Repository) CreateOrder(ctx context.Context, o shop.Order) (shop.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[o.CustomerID]; !ok {
		return shop.Order{}, shop.ErrBadReference
	}
	r.nextOrder++
	o.ID = r.nextOrder
	r.orders[o.ID] = o
	return o, nil
}

// GetOrder retrieves an order by id.
func (r *Repository) GetOrder(ctx context.Context, id int64) (shop.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return shop.Order{}, shop.ErrNotFound
	}
	return o, nil
}

// UpdateOrder replaces an existing order.
func (r *Repository) UpdateOrder(ctx context.Context, o shop.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return shop.ErrNotFound
	}
	if _, ok := r.customers[o.CustomerID]; !ok {
		return shop.ErrBadReference
	}
	r.orders[o.ID] = o
	return nil
}

// DeleteOrder removes an order and cascades its join rows away.
func (r *Repository) DeleteOrder(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	r.links = dropLinks(r.links, func(l link) bool { return l.orderID == id })
	return nil
}

// AddOrderItem links an item to an order, one row per unit.
func (r *Repository) AddOrderItem(ctx context.Context, orderID, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[orderID]; !ok {
		return shop.ErrBadReference
	}
	if _, ok := r.items[itemID]; !ok {
		return shop.ErrBadReference
	}
	r.links = append(r.links, link{orderID: orderID, itemID: itemID})
	return nil
}

// ListOrderItems returns the items on an order, one element per join row.
func (r *Repository) ListOrderItems(ctx context.Context, orderID int64) ([]shop.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.orders[orderID]; !ok {
		return nil, shop.ErrNotFound
	}
	items := []shop.Item{}
	for _, l := range r.links {
		if l.orderID == orderID {
			items = append(items, r.items[l.itemID])
		}
	}
	return items, nil
}

// RemoveOrderItem deletes a single join row.
func (r *Repository) RemoveOrderItem(ctx context.Context, orderID, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.links {
		if l.orderID == orderID && l.itemID == itemID {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return nil
		}
	}
	return shop.ErrNotFound
}

// Seed loads seed records with the same dedup rules as the Postgres store.
// The whole load happens under one lock, so it is all-or-nothing with
// respect to concurrent readers.
func (r *Repository) Seed(ctx context.Context, records []shop.SeedRecord) (shop.SeedStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stats shop.SeedStats
	for _, rec := range records {
		customerID, ok := r.findCustomer(rec.Name, rec.Phone.String())
		if !ok {
			r.nextCustomer++
			customerID = r.nextCustomer
			r.customers[customerID] = shop.Customer{ID: customerID, Name: rec.Name, Phone: rec.Phone}
			stats.Customers++
		}

		r.nextOrder++
		orderID := r.nextOrder
		r.orders[orderID] = shop.Order{ID: orderID, Timestamp: rec.Timestamp, CustomerID: customerID, Notes: rec.Notes}
		stats.Orders++

		for _, si := range rec.Items {
			itemID, ok := r.findItem(si.Name)
			if !ok {
				r.nextItem++
				itemID = r.nextItem
				r.items[itemID] = shop.Item{ID: itemID, Name: si.Name, Price: si.Price}
				stats.Items++
			}
			r.links = append(r.links, link{orderID: orderID, itemID: itemID})
			stats.Links++
		}
	}
	return stats, nil
}

func (r *Repository) findCustomer(name, phone string) (int64, bool) {
	best := int64(0)
	for id, c := range r.customers {
		if c.Name == name && c.Phone.String() == phone && (best == 0 || id < best) {
			best = id
		}
	}
	return best, best != 0
}

func (r *Repository) findItem(name string) (int64, bool) {
	best := int64(0)
	for id, it := range r.items {
		if it.Name == name && (best == 0 || id < best) {
			best = id
		}
	}
	return best, best != 0
}

func dropLinks(links []link, match func(link) bool) []link {
	out := links[:0]
	for _, l := range links {
		if !match(l) {
			out = append(out, l)
		}
	}
	return out
}
