package postgres

import (
	"context"
	"database/sql"

	"orderdesk/pkg/shop"
)

// Seed loads seed records in a single transaction: either the whole file
// lands or none of it does. Customers dedup on (name, phone), items on
// name; the first writer wins and later records reuse the existing row.
func (r *Repository) Seed(ctx context.Context, records []shop.SeedRecord) (shop.SeedStats, error) {
	var stats shop.SeedStats

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	for _, rec := range records {
		customerID, created, err := findOrCreateCustomer(ctx, tx, rec)
		if err != nil {
			return shop.SeedStats{}, err
		}
		if created {
			stats.Customers++
		}

		var orderID int64
		err = tx.QueryRowContext(ctx,
			`INSERT INTO orders ("timestamp", customer_id, notes) VALUES ($1, $2, $3) RETURNING id`,
			rec.Timestamp, customerID, rec.Notes).Scan(&orderID)
		if err != nil {
			return shop.SeedStats{}, err
		}
		stats.Orders++

		for _, si := range rec.Items {
			itemID, created, err := findOrCreateItem(ctx, tx, si)
			if err != nil {
				return shop.SeedStats{}, err
			}
			if created {
				stats.Items++
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO order_items (order_id, item_id) VALUES ($1, $2)",
				orderID, itemID); err != nil {
				return shop.SeedStats{}, err
			}
			stats.Links++
		}
	}

	if err := tx.Commit(); err != nil {
		return shop.SeedStats{}, err
	}
	return stats, nil
}

func findOrCreateCustomer(ctx context.Context, tx *sql.Tx, rec shop.SeedRecord) (int64, bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM customers WHERE name = $1 AND phone = $2 ORDER BY id LIMIT 1",
		rec.Name, rec.Phone.String()).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, err
	}
	err = tx.QueryRowContext(ctx,
		"INSERT INTO customers (name, phone) VALUES ($1, $2) RETURNING id",
		rec.Name, rec.Phone.String()).Scan(&id)
	return id, true, err
}

func findOrCreateItem(ctx context.Context, tx *sql.Tx, si shop.SeedItem) (int64, bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM items WHERE name = $1 ORDER BY id LIMIT 1", si.Name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, err
	}
	err = tx.QueryRowContext(ctx,
		"INSERT INTO items (name, price) VALUES ($1, $2) RETURNING id",
		si.Name, si.Price).Scan(&id)
	return id, true, err
}
