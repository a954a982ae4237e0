package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sencommerce/podbridge/internal/domain"
)

// ProductRepository manages internal catalog products created by imports
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// ListProviderProductIDs returns the provider-reference ids of every
	// product imported from the given source provider.
	ListProviderProductIDs(ctx context.Context, provider string) ([]string, error)
	ExistsByProviderProductID(ctx context.Context, provider, providerProductID string) (bool, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, amount int64, currencyCode string) error
}

// ArtworkRepository reads the stored artwork collection
type ArtworkRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Artwork, error)
}

// DigitalProductRepository reads importable digital products
type DigitalProductRepository interface {
	List(ctx context.Context) ([]*domain.DigitalProduct, error)
	GetByID(ctx context.Context, id string) (*domain.DigitalProduct, error)
}

// OrderRepository reads internal orders for fulfillment translation
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

// SyncLogStore is the injected append/query store of sync attempts. All
// writes go through Append/Complete so implementations can serialize them.
type SyncLogStore interface {
	Append(ctx context.Context, log *domain.SyncLog) error
	Complete(ctx context.Context, id string, status domain.SyncStatus, errorMessage string) error
	List(ctx context.Context) ([]domain.SyncLog, error)
	Stats(ctx context.Context) (domain.SyncStats, error)
}

// Repositories aggregates all repository implementations
type Repositories struct {
	Product        ProductRepository
	Artwork        ArtworkRepository
	DigitalProduct DigitalProductRepository
	Order          OrderRepository
	SyncLog        SyncLogStore
}
