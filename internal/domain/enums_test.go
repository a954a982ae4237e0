package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncStatusTransitions(t *testing.T) {
	assert.True(t, SyncStatusPending.CanTransitionTo(SyncStatusInProgress))
	assert.True(t, SyncStatusPending.CanTransitionTo(SyncStatusSuccess))
	assert.True(t, SyncStatusPending.CanTransitionTo(SyncStatusFailed))

	assert.True(t, SyncStatusInProgress.CanTransitionTo(SyncStatusSuccess))
	assert.True(t, SyncStatusInProgress.CanTransitionTo(SyncStatusFailed))
	assert.False(t, SyncStatusInProgress.CanTransitionTo(SyncStatusPending))

	// Terminal states never transition
	assert.False(t, SyncStatusSuccess.CanTransitionTo(SyncStatusFailed))
	assert.False(t, SyncStatusFailed.CanTransitionTo(SyncStatusSuccess))
	assert.False(t, SyncStatusSuccess.CanTransitionTo(SyncStatusInProgress))
}

func TestSyncStatusIsValid(t *testing.T) {
	assert.True(t, SyncStatusPending.IsValid())
	assert.True(t, SyncStatusInProgress.IsValid())
	assert.True(t, SyncStatusSuccess.IsValid())
	assert.True(t, SyncStatusFailed.IsValid())
	assert.False(t, SyncStatus("queued").IsValid())
}

func TestSyncTypeIsValid(t *testing.T) {
	assert.True(t, SyncTypeImportProducts.IsValid())
	assert.True(t, SyncTypeBulkImport.IsValid())
	assert.True(t, SyncTypeUpdatePrices.IsValid())
	assert.True(t, SyncTypeCheckInventory.IsValid())
	assert.False(t, SyncType("reindex").IsValid())
}

func TestOrderItemMetadataResolution(t *testing.T) {
	item := OrderItem{
		Metadata: FulfillmentMetadata{
			FulfillmentType:   FulfillmentTypeDigitalDownload,
			PrintfulProductID: "item-level",
			ArtworkID:         "art_item",
		},
		ProductMetadata: FulfillmentMetadata{
			FulfillmentType:   FulfillmentTypePrintfulPOD,
			PrintfulProductID: "product-level",
			ArtworkURL:        "https://cdn/product.png",
		},
	}

	assert.Equal(t, FulfillmentTypePrintfulPOD, item.EffectiveFulfillmentType())
	assert.Equal(t, "product-level", item.PrintfulProductRef())
	assert.Equal(t, "art_item", item.ArtworkRef())
	assert.Equal(t, "https://cdn/product.png", item.PresetArtworkURL())
}

func TestOrderItemFallsBackToItemMetadata(t *testing.T) {
	item := OrderItem{
		Metadata: FulfillmentMetadata{
			FulfillmentType:   FulfillmentTypePrintfulPOD,
			PrintfulProductID: "item-level",
		},
	}

	assert.Equal(t, FulfillmentTypePrintfulPOD, item.EffectiveFulfillmentType())
	assert.Equal(t, "item-level", item.PrintfulProductRef())
	assert.Equal(t, "", item.ArtworkRef())
}
