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

// Looks up a Printful sync product and prints its variants, so operators can
// check which catalog variant an order would resolve to.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-variant/main.go <printful-product-id>")
		fmt.Println("Example: go run cmd/find-variant/main.go 384829302")
		os.Exit(1)
	}

	productID := os.Args[1]

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

	detail, err := client.GetSyncProduct(ctx, productID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch sync product: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sync product: %s (id %d)\n", detail.SyncProduct.Name, detail.SyncProduct.ID)
	fmt.Printf("Variants: %d\n\n", len(detail.SyncVariants))

	for _, v := range detail.SyncVariants {
		marker := " "
		if v.Synced {
			marker = "*"
		}
		fmt.Printf("%s sync_variant_id=%d variant_id=%d synced=%t retail_price=%s files=%d\n",
			marker, v.ID, v.VariantID, v.Synced, v.RetailPrice, len(v.Files))
		for _, f := range v.Files {
			fmt.Printf("    file type=%s url=%s\n", f.Type, firstNonEmpty(f.PreviewURL, f.ThumbnailURL, f.URL))
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
