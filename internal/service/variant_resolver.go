package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/printful"
	"github.com/sencommerce/podbridge/pkg/errors"
)

// ResolvedVariant is the outcome of resolving a stored Printful product
// reference to its active sellable variant
type ResolvedVariant struct {
	SyncVariantID    int64
	CatalogVariantID int64
	AttachedFileURL  string
	RetailPrice      string
}

type variantResolver struct {
	client ProviderAPI
	logger *zap.Logger
}

// NewVariantResolver creates a new variant resolver
func NewVariantResolver(client ProviderAPI, logger *zap.Logger) *variantResolver {
	return &variantResolver{
		client: client,
		logger: logger,
	}
}

// Resolve fetches the synced representation of a Printful product and selects
// its active variant: the first with synced=true, else the first in the list.
func (r *variantResolver) Resolve(ctx context.Context, printfulProductID string) (*ResolvedVariant, error) {
	detail, err := r.client.GetSyncProduct(ctx, printfulProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sync product %s: %w", printfulProductID, err)
	}

	if len(detail.SyncVariants) == 0 {
		return nil, &errors.ErrNoSellableVariant{ProductID: printfulProductID}
	}

	variant := detail.SyncVariants[0]
	for _, v := range detail.SyncVariants {
		if v.Synced {
			variant = v
			break
		}
	}

	resolved := &ResolvedVariant{
		SyncVariantID:    variant.ID,
		CatalogVariantID: variant.VariantID,
		AttachedFileURL:  designFileURL(variant.Files),
		RetailPrice:      variant.RetailPrice,
	}

	r.logger.Debug("Resolved sync variant",
		zap.String("printful_product_id", printfulProductID),
		zap.Int64("sync_variant_id", resolved.SyncVariantID),
		zap.Int64("catalog_variant_id", resolved.CatalogVariantID),
		zap.Bool("synced", variant.Synced),
		zap.Bool("has_file", resolved.AttachedFileURL != ""),
	)

	return resolved, nil
}

// designFileURL finds the first attached design file (anything but a
// preview) with a usable URL, preferring preview_url, then thumbnail_url,
// then url.
func designFileURL(files []printful.File) string {
	for _, f := range files {
		if f.Type == "" || f.Type == "preview" {
			continue
		}
		if f.PreviewURL != "" {
			return f.PreviewURL
		}
		if f.ThumbnailURL != "" {
			return f.ThumbnailURL
		}
		if f.URL != "" {
			return f.URL
		}
	}
	return ""
}
