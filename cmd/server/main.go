package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/api"
	"github.com/sencommerce/podbridge/internal/config"
	"github.com/sencommerce/podbridge/internal/printful"
	"github.com/sencommerce/podbridge/internal/repository/postgres"
	"github.com/sencommerce/podbridge/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	// Printful client and services
	client := printful.NewClient(cfg.Printful, logger)
	pricing := service.NewRandomBandPolicy(1500, 5000, time.Now().UnixNano())

	syncService := service.NewSyncService(client, repos, pricing, cfg.Store, cfg.Sync.ImportWorkers, logger)
	defer syncService.Close()

	orderService := service.NewOrderService(client, repos, cfg.Store, logger)

	router := api.NewRouter(cfg, repos, syncService, orderService, logger)

	logger.Info("Starting POD bridge",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
