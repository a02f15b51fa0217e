package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	storepostgres "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/persistence/postgres"
	storedomain "github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := platformobservability.NewLogger(os.Stdout, os.Getenv("LOG_LEVEL"))
	db, cleanup := platformpostgres.ConnectOptional(ctx, os.Getenv("POSTGRES_DSN"), logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot report stock levels")
	}

	ids, err := productIDsFromEnv()
	if err != nil {
		log.Fatalf("invalid PRODUCT_IDS: %v", err)
	}
	levels, err := storepostgres.NewStockLedger(db).LevelsFor(ctx, ids)
	if err != nil {
		log.Fatalf("failed to read stock levels: %v", err)
	}
	total := 0
	for _, level := range levels {
		total += level.Quantity
		logger.Info("stock level", slog.String("product.id", level.ProductID.String()), slog.Int("quantity", level.Quantity))
	}
	logger.Info("stock report completed", slog.Int("products", len(levels)), slog.Int("units", total))
}

// productIDsFromEnv parses the comma-separated PRODUCT_IDS filter.
func productIDsFromEnv() ([]storedomain.ProductID, error) {
	raw := strings.TrimSpace(os.Getenv("PRODUCT_IDS"))
	if raw == "" {
		return nil, nil
	}
	var ids []storedomain.ProductID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := storedomain.ParseProductID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
