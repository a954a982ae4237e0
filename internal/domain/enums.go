package domain

// SyncStatus represents the status of a sync log entry
type SyncStatus string

const (
	SyncStatusPending    SyncStatus = "pending"
	SyncStatusInProgress SyncStatus = "in_progress"
	SyncStatusSuccess    SyncStatus = "success"
	SyncStatusFailed     SyncStatus = "failed"
)

// IsValid checks if the sync status is valid
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusPending, SyncStatusInProgress, SyncStatusSuccess, SyncStatusFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s SyncStatus) CanTransitionTo(newStatus SyncStatus) bool {
	switch s {
	case SyncStatusPending:
		return newStatus == SyncStatusInProgress ||
			newStatus == SyncStatusSuccess ||
			newStatus == SyncStatusFailed
	case SyncStatusInProgress:
		return newStatus == SyncStatusSuccess ||
			newStatus == SyncStatusFailed
	case SyncStatusSuccess, SyncStatusFailed:
		return false // Terminal states
	default:
		return false
	}
}

// SyncType represents the kind of sync operation a log entry records
type SyncType string

const (
	SyncTypeImportProducts SyncType = "import_products"
	SyncTypeImport         SyncType = "import"
	SyncTypeBulkImport     SyncType = "bulk_import"
	SyncTypeUpdatePrices   SyncType = "update_prices"
	SyncTypeCheckInventory SyncType = "check_inventory"
)

// IsValid checks if the sync type is valid
func (t SyncType) IsValid() bool {
	switch t {
	case SyncTypeImportProducts, SyncTypeImport, SyncTypeBulkImport,
		SyncTypeUpdatePrices, SyncTypeCheckInventory:
		return true
	default:
		return false
	}
}

// FulfillmentType marks how a product is fulfilled
type FulfillmentType string

const (
	FulfillmentTypePrintfulPOD     FulfillmentType = "printful_pod"
	FulfillmentTypeDigitalDownload FulfillmentType = "digital_download"
)

// ProductStatus represents the internal catalog status of a product
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
)
