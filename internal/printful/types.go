package printful

import "encoding/json"

// envelope is the common Printful response wrapper
type envelope struct {
	Code   int             `json:"code"`
	Result json.RawMessage `json:"result"`
	Error  *apiErrorBody   `json:"error,omitempty"`
}

type apiErrorBody struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// CatalogProduct is one product of the provider's store catalog
type CatalogProduct struct {
	ID           int64  `json:"id"`
	ExternalID   string `json:"external_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	Variants     int    `json:"variants"`
	Synced       int    `json:"synced"`
}

// File is a design or preview file attached to a sync variant
type File struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	PreviewURL   string `json:"preview_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// SyncVariant is the provider-side representation of one sellable variant of
// a synced product. VariantID is the stable catalog variant id underneath
// the store-specific sync registration.
type SyncVariant struct {
	ID          int64  `json:"id"`
	ExternalID  string `json:"external_id"`
	SyncProduct int64  `json:"sync_product_id"`
	Name        string `json:"name"`
	Synced      bool   `json:"synced"`
	VariantID   int64  `json:"variant_id"`
	RetailPrice string `json:"retail_price"`
	Currency    string `json:"currency"`
	Files       []File `json:"files"`
}

// SyncProductDetail is the response of the sync-product lookup endpoint
type SyncProductDetail struct {
	SyncProduct  CatalogProduct `json:"sync_product"`
	SyncVariants []SyncVariant  `json:"sync_variants"`
}

// Recipient is the shipping recipient block of an order request
type Recipient struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	StateCode   string `json:"state_code"`
	CountryCode string `json:"country_code"`
	Zip         string `json:"zip"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email"`
}

// OrderFile attaches a design file to an order item
type OrderFile struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// ItemOption is a provider-specific per-item option such as embroidery
// stitch color
type ItemOption struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// OrderItem is one line of an order request. VariantID is a catalog variant
// id; the provider rejects items carrying a variant id without files.
type OrderItem struct {
	VariantID   int64        `json:"variant_id"`
	Quantity    int          `json:"quantity"`
	Name        string       `json:"name,omitempty"`
	RetailPrice string       `json:"retail_price,omitempty"`
	Files       []OrderFile  `json:"files,omitempty"`
	Options     []ItemOption `json:"options,omitempty"`
}

// RetailCosts summarizes order totals as decimal strings
type RetailCosts struct {
	Currency string `json:"currency"`
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
}

// PackingSlip customizes the slip included with a shipment
type PackingSlip struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

// OrderRequest is the order-creation payload
type OrderRequest struct {
	ExternalID  string       `json:"external_id,omitempty"`
	Recipient   Recipient    `json:"recipient"`
	Items       []OrderItem  `json:"items"`
	RetailCosts *RetailCosts `json:"retail_costs,omitempty"`
	PackingSlip *PackingSlip `json:"packing_slip,omitempty"`
}

// Order is a provider order as returned by the order endpoints
type Order struct {
	ID          int64           `json:"id"`
	ExternalID  string          `json:"external_id"`
	Status      string          `json:"status"`
	Created     int64           `json:"created"`
	Updated     int64           `json:"updated"`
	Recipient   Recipient       `json:"recipient"`
	Items       []OrderItem     `json:"items"`
	RetailCosts json.RawMessage `json:"retail_costs,omitempty"`
	Costs       json.RawMessage `json:"costs,omitempty"`
}
