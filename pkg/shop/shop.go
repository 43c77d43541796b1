// Package shop defines the order-management domain: customers, items,
// orders and the repository behavior for persisting them.
package shop

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
)

// Customer is somebody orders are placed for.
type Customer struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Phone PhoneNumber `json:"phone"`
}

// Item is a purchasable product.
type Item struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Order ties a customer to a point in time. Timestamp is seconds since
// epoch and is always assigned by the server, never by the client.
type Order struct {
	ID         int64  `json:"id"`
	Timestamp  int64  `json:"timestamp"`
	CustomerID int64  `json:"customer_id"`
	Notes      string `json:"notes"`
}

// PhoneNumber is a phone stored as text. Older clients send bare digits
// instead of a JSON string, so it unmarshals from either.
type PhoneNumber string

func (p *PhoneNumber) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PhoneNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = PhoneNumber(n.String())
	return nil
}

func (p PhoneNumber) String() string { return string(p) }

// FormatID renders an entity id the way it appears in URLs and messages.
func FormatID(id int64) string { return strconv.FormatInt(id, 10) }

// Repository defines behavior for persisting the shop entities.
type Repository interface {
	CreateCustomer(ctx context.Context, c Customer) (Customer, error)
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	UpdateCustomer(ctx context.Context, c Customer) error
	DeleteCustomer(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, it Item) (Item, error)
	GetItem(ctx context.Context, id int64) (Item, error)
	UpdateItem(ctx context.Context, it Item) error
	DeleteItem(ctx context.Context, id int64) error

	CreateOrder(ctx context.Context, o Order) (Order, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
	UpdateOrder(ctx context.Context, o Order) error
	DeleteOrder(ctx context.Context, id int64) error

	AddOrderItem(ctx context.Context, orderID, itemID int64) error
	ListOrderItems(ctx context.Context, orderID int64) ([]Item, error)
	RemoveOrderItem(ctx context.Context, orderID, itemID int64) error

	Seed(ctx context.Context, records []SeedRecord) (SeedStats, error)
}

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrCustomerHasOrders indicates a customer delete was refused because
// orders still reference the customer.
var ErrCustomerHasOrders = errors.New("customer still referenced by orders")

// ErrBadReference indicates a write referenced a row that does not exist,
// such as an order pointing at a missing customer.
var ErrBadReference = errors.New("referenced row does not exist")
