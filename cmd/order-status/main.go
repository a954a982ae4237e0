package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/config"
	"github.com/sencommerce/podbridge/internal/printful"
)

// Looks up a previously created Printful order so operators can check
// fulfillment progress without opening the provider dashboard.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/order-status/main.go <printful-order-id>")
		fmt.Println("Example: go run cmd/order-status/main.go 9001")
		os.Exit(1)
	}

	orderID := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := printful.NewClient(cfg.Printful, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	order, err := client.GetOrder(ctx, orderID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch order: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Order %d (external_id=%s)\n", order.ID, order.ExternalID)
	fmt.Printf("Status: %s\n", order.Status)
	fmt.Printf("Items: %d\n", len(order.Items))
	for _, item := range order.Items {
		fmt.Printf("  variant_id=%d quantity=%d retail_price=%s\n",
			item.VariantID, item.Quantity, item.RetailPrice)
	}
}
