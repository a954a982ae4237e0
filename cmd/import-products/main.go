package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/config"
	"github.com/sencommerce/podbridge/internal/printful"
	"github.com/sencommerce/podbridge/internal/repository/postgres"
	"github.com/sencommerce/podbridge/internal/service"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/import-products/main.go <provider> <product-id> [product-id...]")
		fmt.Println("Example: go run cmd/import-products/main.go printful 384829302 384829305")
		os.Exit(1)
	}

	provider := os.Args[1]
	productIDs := os.Args[2:]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	client := printful.NewClient(cfg.Printful, logger)
	pricing := service.NewRandomBandPolicy(1500, 5000, time.Now().UnixNano())

	syncService := service.NewSyncService(client, repos, pricing, cfg.Store, cfg.Sync.ImportWorkers, logger)
	defer syncService.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := syncService.ImportProducts(ctx, provider, productIDs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported: %d, failed: %d\n", result.Imported, result.Failed)
	for _, p := range result.ImportedProducts {
		fmt.Printf("  ✅ %s -> %s\n", p.ProductID, p.InternalProductID)
	}
	for _, e := range result.Errors {
		fmt.Printf("  ❌ %s: %s\n", e.ProductID, e.Error)
	}

	if result.Failed > 0 {
		os.Exit(1)
	}
}
