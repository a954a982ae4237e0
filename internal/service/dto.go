package service

import (
	"context"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/internal/printful"
)

// ProviderAPI is the slice of the Printful client the services depend on
type ProviderAPI interface {
	FetchCatalogProducts(ctx context.Context) ([]printful.CatalogProduct, error)
	GetSyncProduct(ctx context.Context, syncProductID string) (*printful.SyncProductDetail, error)
	CreateOrder(ctx context.Context, order *printful.OrderRequest) (*printful.Order, error)
}

// AvailableProduct is a provider catalog entry offered for import
type AvailableProduct struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	ThumbnailURL    string `json:"thumbnail_url"`
	Status          string `json:"status"`
	Provider        string `json:"provider"`
	AlreadyImported bool   `json:"already_imported"`
}

// AvailableDigitalProduct is a digital product offered for import
type AvailableDigitalProduct struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	FileSize        int64  `json:"file_size"`
	MimeType        string `json:"mime_type"`
	Status          string `json:"status"`
	Provider        string `json:"provider"`
	AlreadyImported bool   `json:"already_imported"`
}

// AvailableProducts groups import candidates by provider
type AvailableProducts struct {
	Printful []AvailableProduct        `json:"printful"`
	Digital  []AvailableDigitalProduct `json:"digital"`
}

// SyncOverview is the admin sync-status response
type SyncOverview struct {
	Logs              []domain.SyncLog  `json:"logs"`
	Stats             domain.SyncStats  `json:"stats"`
	AvailableProducts AvailableProducts `json:"available_products"`
}

// ImportError records one failed item of an import batch
type ImportError struct {
	ProductID string `json:"productId"`
	Error     string `json:"error"`
}

// ImportedProduct records one successfully imported item
type ImportedProduct struct {
	ProductID         string `json:"productId"`
	InternalProductID string `json:"internalProductId"`
	Provider          string `json:"provider"`
}

// ImportResult aggregates an import batch's outcome. One item's failure never
// aborts the batch, so callers must inspect Failed and Errors rather than
// assume all-or-nothing.
type ImportResult struct {
	Imported         int               `json:"imported"`
	Failed           int               `json:"failed"`
	ImportedProducts []ImportedProduct `json:"imported_products"`
	Errors           []ImportError     `json:"errors"`
}

// SkippedItem records a line item dropped during order translation and why,
// so a higher-level workflow can decide on refund or manual fulfillment
type SkippedItem struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// ProviderOrderResult is the outcome of translating and submitting one order
type ProviderOrderResult struct {
	PrintfulOrderID string          `json:"printful_order_id"`
	Order           *printful.Order `json:"printful_order"`
	SkippedItems    []SkippedItem   `json:"skipped_items"`
}
