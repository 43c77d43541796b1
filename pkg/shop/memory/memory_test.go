package memory

import (
	"context"
	"testing"

	"orderdesk/pkg/shop"
)

func TestItemCRUD(t *testing.T) {
	ctx := context.Background()
	repo := New()

	it, err := repo.CreateItem(ctx, shop.Item{Name: "Widget", Price: 9.99})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetItem(ctx, it.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Widget" || got.Price != 9.99 {
		t.Fatalf("unexpected item: %+v", got)
	}

	it.Price = 12.50
	if err := repo.UpdateItem(ctx, it); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.GetItem(ctx, it.ID)
	if got.Price != 12.50 || got.Name != "Widget" {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := repo.UpdateItem(ctx, shop.Item{ID: 999, Name: "x"}); err != shop.ErrNotFound {
		t.Fatalf("expected ErrNotFound updating missing item, got %v", err)
	}

	if err := repo.DeleteItem(ctx, it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetItem(ctx, it.ID); err != shop.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// An id that never existed deletes without complaint.
	if err := repo.DeleteItem(ctx, 12345); err != nil {
		t.Fatalf("delete of missing id: %v", err)
	}
}

func TestCustomerDeleteGuard(t *testing.T) {
	ctx := context.Background()
	repo := New()

	c, err := repo.CreateCustomer(ctx, shop.Customer{Name: "Ada", Phone: "555-0101"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	o, err := repo.CreateOrder(ctx, shop.Order{Timestamp: 1000, CustomerID: c.ID})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := repo.DeleteCustomer(ctx, c.ID); err != shop.ErrCustomerHasOrders {
		t.Fatalf("expected ErrCustomerHasOrders, got %v", err)
	}
	if _, err := repo.GetCustomer(ctx, c.ID); err != nil {
		t.Fatalf("customer should survive refused delete: %v", err)
	}

	if err := repo.DeleteOrder(ctx, o.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if err := repo.DeleteCustomer(ctx, c.ID); err != nil {
		t.Fatalf("delete customer after orders gone: %v", err)
	}
	if _, err := repo.GetCustomer(ctx, c.ID); err != shop.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderRequiresCustomer(t *testing.T) {
	ctx := context.Background()
	repo := New()

	if _, err := repo.CreateOrder(ctx, shop.Order{CustomerID: 42}); err != shop.ErrBadReference {
		t.Fatalf("expected ErrBadReference, got %v", err)
	}
}

func TestOrderItemsCascade(t *testing.T) {
	ctx := context.Background()
	repo := New()

	c, _ := repo.CreateCustomer(ctx, shop.Customer{Name: "Ada", Phone: "555-0101"})
	o, _ := repo.CreateOrder(ctx, shop.Order{Timestamp: 1000, CustomerID: c.ID})
	it, _ := repo.CreateItem(ctx, shop.Item{Name: "Latte", Price: 4.50})

	// Two join rows for the same item mean two units.
	if err := repo.AddOrderItem(ctx, o.ID, it.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.AddOrderItem(ctx, o.ID, it.ID); err != nil {
		t.Fatalf("add second unit: %v", err)
	}
	items, err := repo.ListOrderItems(ctx, o.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 join rows, got %d", len(items))
	}

	if err := repo.RemoveOrderItem(ctx, o.ID, it.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, _ = repo.ListOrderItems(ctx, o.ID)
	if len(items) != 1 {
		t.Fatalf("remove should drop one row, got %d", len(items))
	}

	if err := repo.AddOrderItem(ctx, o.ID, 999); err != shop.ErrBadReference {
		t.Fatalf("expected ErrBadReference for missing item, got %v", err)
	}
	if err := repo.RemoveOrderItem(ctx, o.ID, 999); err != shop.ErrNotFound {
		t.Fatalf("expected ErrNotFound removing absent row, got %v", err)
	}

	if err := repo.DeleteOrder(ctx, o.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if _, err := repo.ListOrderItems(ctx, o.ID); err != shop.ErrNotFound {
		t.Fatalf("expected ErrNotFound listing deleted order, got %v", err)
	}

	// The item itself survives the cascade.
	if _, err := repo.GetItem(ctx, it.ID); err != nil {
		t.Fatalf("item should survive order delete: %v", err)
	}
}

func TestSeedDedup(t *testing.T) {
	ctx := context.Background()
	repo := New()

	records := []shop.SeedRecord{
		{
			Name: "Ada", Phone: "555-0101", Timestamp: 1000, Notes: "first",
			Items: []shop.SeedItem{{Name: "Latte", Price: 4.50}, {Name: "Muffin", Price: 3.00}},
		},
		{
			Name: "Ada", Phone: "555-0101", Timestamp: 2000, Notes: "second",
			Items: []shop.SeedItem{{Name: "Latte", Price: 4.50}},
		},
	}

	stats, err := repo.Seed(ctx, records)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if stats.Customers != 1 {
		t.Fatalf("expected 1 new customer, got %d", stats.Customers)
	}
	if stats.Orders != 2 {
		t.Fatalf("expected 2 orders, got %d", stats.Orders)
	}
	if stats.Items != 2 {
		t.Fatalf("expected 2 new items, got %d", stats.Items)
	}
	if stats.Links != 3 {
		t.Fatalf("expected 3 join rows, got %d", stats.Links)
	}

	// Both orders reference the single Latte row.
	first, err := repo.ListOrderItems(ctx, 1)
	if err != nil {
		t.Fatalf("list first order: %v", err)
	}
	second, err := repo.ListOrderItems(ctx, 2)
	if err != nil {
		t.Fatalf("list second order: %v", err)
	}
	if first[0].ID != second[0].ID {
		t.Fatalf("latte rows differ: %d vs %d", first[0].ID, second[0].ID)
	}
}
