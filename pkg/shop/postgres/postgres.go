// Package postgres implements a PostgreSQL-backed shop repository.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"orderdesk/pkg/shop"
)

// Connection pool defaults applied by Open.
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 30 * time.Second
)

// Open connects to Postgres at the given URL, applies pool settings and
// verifies the connection. The returned DB is the process-wide pool; every
// request borrows a connection from it and returns it when done.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Repository persists shop entities in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository over an open pool.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// translate maps driver errors to domain errors. Foreign-key violations
// become ErrBadReference so handlers can report them without leaking SQL.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return fmt.Errorf("%w (%s)", shop.ErrBadReference, pqErr.Constraint)
	}
	return err
}

// CreateCustomer inserts a new customer and returns it with its id.
func (r *Repository) CreateCustomer(ctx context.Context, c shop.Customer) (shop.Customer, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO customers (name, phone) VALUES ($1, $2) RETURNING id",
		c.Name, c.Phone.String()).Scan(&c.ID)
	return c, err
}

// GetCustomer retrieves a customer by id.
func (r *Repository) GetCustomer(ctx context.Context, id int64) (shop.Customer, error) {
	var c shop.Customer
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, phone FROM customers WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.Phone)
	if err == sql.ErrNoRows {
		return shop.Customer{}, shop.ErrNotFound
	}
	return c, err
}

// UpdateCustomer overwrites every mutable field of an existing customer.
func (r *Repository) UpdateCustomer(ctx context.Context, c shop.Customer) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE customers SET name = $2, phone = $3 WHERE id = $1",
		c.ID, c.Name, c.Phone.String())
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shop.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer unless orders still reference it. The
// guard and the delete run in one transaction so the check cannot go stale.
func (r *Repository) DeleteCustomer(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE customer_id = $1", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return shop.ErrCustomerHasOrders
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateItem inserts a new item. Duplicate names are allowed here; only
// seed loading dedups items by name.
func (r *Repository) CreateItem(ctx context.Context, it shop.Item) (shop.Item, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO items (name, price) VALUES ($1, $2) RETURNING id",
		it.Name, it.Price).Scan(&it.ID)
	return it, err
}

// GetItem retrieves an item by id.
func (r *Repository) GetItem(ctx context.Context, id int64) (shop.Item, error) {
	var it shop.Item
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, price FROM items WHERE id = $1", id).
		Scan(&it.ID, &it.Name, &it.Price)
	if err == sql.ErrNoRows {
		return shop.Item{}, shop.ErrNotFound
	}
	return it, err
}

// UpdateItem overwrites an existing item.
func (r *Repository) UpdateItem(ctx context.Context, it shop.Item) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE items SET name = $2, price = $3 WHERE id = $1",
		it.ID, it.Name, it.Price)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shop.ErrNotFound
	}
	return nil
}

// DeleteItem removes an item. Join rows referencing it cascade away.
// Deleting an id with no row is not an error.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	return err
}

// CreateOrder inserts a new order. The caller stamps the timestamp; the
// customer reference is enforced by the foreign key.
func (r *Repository) CreateOrder(ctx context.Context, o shop.Order) (shop.Order, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO orders ("timestamp", customer_id, notes) VALUES ($1, $2, $3) RETURNING id`,
		o.Timestamp, o.CustomerID, o.Notes).Scan(&o.ID)
	return o, translate(err)
}

// GetOrder retrieves an order by id.
func (r *Repository) GetOrder(ctx context.Context, id int64) (shop.Order, error) {
	var o shop.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, "timestamp", customer_id, notes FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.Timestamp, &o.CustomerID, &o.Notes)
	if err == sql.ErrNoRows {
		return shop.Order{}, shop.ErrNotFound
	}
	return o, err
}

// UpdateOrder overwrites an existing order, timestamp included.
func (r *Repository) UpdateOrder(ctx context.Context, o shop.Order) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET "timestamp" = $2, customer_id = $3, notes = $4 WHERE id = $1`,
		o.ID, o.Timestamp, o.CustomerID, o.Notes)
	if err != nil {
		return translate(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shop.ErrNotFound
	}
	return nil
}

// DeleteOrder removes an order; its join rows cascade away.
func (r *Repository) DeleteOrder(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	return err
}

// AddOrderItem links an item to an order. One row per unit: adding the
// same item twice means two units.
func (r *Repository) AddOrderItem(ctx context.Context, orderID, itemID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO order_items (order_id, item_id) VALUES ($1, $2)", orderID, itemID)
	return translate(err)
}

// ListOrderItems returns the items on an order, one element per join row.
func (r *Repository) ListOrderItems(ctx context.Context, orderID int64) ([]shop.Item, error) {
	if _, err := r.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.id, i.name, i.price
		 FROM order_items oi JOIN items i ON i.id = oi.item_id
		 WHERE oi.order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []shop.Item{}
	for rows.Next() {
		var it shop.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// RemoveOrderItem deletes a single join row, leaving further units of the
// same item on the order intact.
func (r *Repository) RemoveOrderItem(ctx context.Context, orderID, itemID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM order_items
		 WHERE ctid IN (
			SELECT ctid FROM order_items WHERE order_id = $1 AND item_id = $2 LIMIT 1
		 )`, orderID, itemID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shop.ErrNotFound
	}
	return nil
}
