package domain

import (
	"time"

	"github.com/google/uuid"
)

// FulfillmentMetadata carries the provider-reference fields attached to
// products and order items. It replaces free-form metadata maps so resolution
// code works on named fields validated where orders are loaded.
type FulfillmentMetadata struct {
	FulfillmentType   FulfillmentType
	PrintfulProductID string
	DigitalProductID  string
	ArtworkID         string
	ArtworkURL        string
	ProductType       string
	SourceProvider    string
}

// Product represents an internal catalog product
type Product struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Status         ProductStatus
	ThumbnailURL   string
	SKU            string
	PriceAmount    int64 // minor currency units
	CurrencyCode   string
	SalesChannelID string
	Metadata       FulfillmentMetadata
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Artwork represents a stored design in the artwork collection
type Artwork struct {
	ID        string
	Title     string
	ImageURL  string
	CreatedAt time.Time
}

// DigitalProduct represents a downloadable product available for import
type DigitalProduct struct {
	ID          string
	Name        string
	Description string
	FileSize    int64
	MimeType    string
}

// SyncLog records one sync operation or one per-item outcome within a batch
type SyncLog struct {
	ID           string
	ProductID    string
	ProductName  string
	SyncType     SyncType
	Status       SyncStatus
	ProviderType string
	ErrorMessage string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// SyncStats aggregates sync log counts by status
type SyncStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Success    int `json:"success"`
	Failed     int `json:"failed"`
	InProgress int `json:"in_progress"`
}

// Address is an order shipping address
type Address struct {
	FirstName   string
	LastName    string
	Company     string
	Address1    string
	Address2    string
	City        string
	Province    string
	CountryCode string
	PostalCode  string
	Phone       string
}

// Order is the internal view of an order handed to the translator
type Order struct {
	ID              string
	Email           string
	CurrencyCode    string
	Subtotal        int64 // minor currency units
	ShippingTotal   int64
	TaxTotal        int64
	ShippingAddress *Address
	Items           []OrderItem
}

// OrderItem is one line item of an internal order. Metadata comes from the
// line item itself, ProductMetadata from the product it was purchased as;
// product-level values win during resolution.
type OrderItem struct {
	ID              string
	Title           string
	Quantity        int
	UnitPrice       int64 // minor currency units
	Metadata        FulfillmentMetadata
	ProductMetadata FulfillmentMetadata
}

// EffectiveFulfillmentType resolves the fulfillment type for a line item,
// preferring the product's metadata over the item's own.
func (i OrderItem) EffectiveFulfillmentType() FulfillmentType {
	if i.ProductMetadata.FulfillmentType != "" {
		return i.ProductMetadata.FulfillmentType
	}
	return i.Metadata.FulfillmentType
}

// PrintfulProductRef resolves the Printful sync product id for a line item
func (i OrderItem) PrintfulProductRef() string {
	if i.ProductMetadata.PrintfulProductID != "" {
		return i.ProductMetadata.PrintfulProductID
	}
	return i.Metadata.PrintfulProductID
}

// ArtworkRef resolves the artwork collection id for a line item
func (i OrderItem) ArtworkRef() string {
	if i.ProductMetadata.ArtworkID != "" {
		return i.ProductMetadata.ArtworkID
	}
	return i.Metadata.ArtworkID
}

// PresetArtworkURL resolves an artwork URL already stored on the item or product
func (i OrderItem) PresetArtworkURL() string {
	if i.ProductMetadata.ArtworkURL != "" {
		return i.ProductMetadata.ArtworkURL
	}
	return i.Metadata.ArtworkURL
}
