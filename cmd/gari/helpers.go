package main

import (
	"context"
	"fmt"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/config"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/service"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/storage"
	"github.com/shopspring/decimal"
)

// initStorage opens the SQLite database at the configured path and brings
// the schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := config.ExpandPath(config.DatabasePath())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseDecimalFlag parses a money or engine-size flag. An empty value is
// legal and returns zero; the caller decides whether zero is acceptable.
func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid --%s value %q: %w", name, value, err)
	}
	return d, nil
}
