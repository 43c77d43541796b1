// Command seed loads sample orders into the database. It creates the
// schema if needed, then imports a JSON file of seed records in a single
// transaction, deduping customers by (name, phone) and items by name.
package main

import (
	"context"
	"flag"
	"os"

	_ "github.com/lib/pq"

	"orderdesk/pkg/config"
	"orderdesk/pkg/logger"
	"orderdesk/pkg/shop"
	"orderdesk/pkg/shop/postgres"
)

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "orderdesk-seed", nil)
	if err := run(log); err != nil {
		log.Error(context.Background(), "seed", "error", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	file := flag.String("file", cfg.Seed.File, "seed records JSON file")
	flag.Parse()

	ctx := context.Background()

	records, err := shop.ReadSeedFile(*file)
	if err != nil {
		return err
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := postgres.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	stats, err := repo.Seed(ctx, records)
	if err != nil {
		return err
	}
	log.Info(ctx, "seed complete",
		"records", len(records),
		"customers_created", stats.Customers,
		"orders_created", stats.Orders,
		"items_created", stats.Items,
		"links_created", stats.Links,
	)
	return nil
}
