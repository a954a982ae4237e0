package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/internal/repository"
)

type artworkResolver struct {
	artworks repository.ArtworkRepository
	logger   *zap.Logger
}

// NewArtworkResolver creates a new artwork resolver
func NewArtworkResolver(artworks repository.ArtworkRepository, logger *zap.Logger) *artworkResolver {
	return &artworkResolver{
		artworks: artworks,
		logger:   logger,
	}
}

// Resolve determines the design-file URL for a line item. Precedence: a file
// already configured on the synced variant wins outright; then a URL stored
// on the item or product; then the artwork-collection lookup. A lookup
// failure is logged and treated as "no artwork"; there are no retries.
func (r *artworkResolver) Resolve(ctx context.Context, item domain.OrderItem, variantFileURL string) string {
	if variantFileURL != "" {
		return variantFileURL
	}

	if url := item.PresetArtworkURL(); url != "" {
		return url
	}

	artworkID := item.ArtworkRef()
	if artworkID == "" {
		return ""
	}

	artwork, err := r.artworks.GetByID(ctx, artworkID)
	if err != nil {
		r.logger.Warn("Failed to fetch artwork, treating as no artwork",
			zap.String("artwork_id", artworkID),
			zap.String("item_title", item.Title),
			zap.Error(err),
		)
		return ""
	}

	return artwork.ImageURL
}
