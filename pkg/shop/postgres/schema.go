package postgres

import "context"

// schemaStatements create the four entity tables. Every statement is
// idempotent so EnsureSchema can run on each startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id    BIGSERIAL PRIMARY KEY,
		name  TEXT NOT NULL,
		phone TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id    BIGSERIAL PRIMARY KEY,
		name  TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          BIGSERIAL PRIMARY KEY,
		"timestamp" BIGINT NOT NULL,
		customer_id BIGINT NOT NULL REFERENCES customers(id),
		notes       TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		item_id  BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE
	)`,
}

// EnsureSchema creates the entity tables if they are absent.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
