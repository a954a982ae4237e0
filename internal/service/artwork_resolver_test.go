package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/pkg/errors"
)

// stubArtworkRepo serves artworks from a map
type stubArtworkRepo struct {
	artworks map[string]*domain.Artwork
	err      error
}

func (s *stubArtworkRepo) GetByID(_ context.Context, id string) (*domain.Artwork, error) {
	if s.err != nil {
		return nil, s.err
	}
	if artwork, ok := s.artworks[id]; ok {
		return artwork, nil
	}
	return nil, &errors.ErrNotFound{Resource: "artwork", ID: id}
}

func TestArtworkVariantFileWinsOutright(t *testing.T) {
	resolver := NewArtworkResolver(&stubArtworkRepo{
		artworks: map[string]*domain.Artwork{
			"art_1": {ID: "art_1", ImageURL: "https://cdn/stored.png"},
		},
	}, zap.NewNop())

	item := domain.OrderItem{
		Title:    "Poster",
		Metadata: domain.FulfillmentMetadata{ArtworkID: "art_1", ArtworkURL: "https://cdn/preset.png"},
	}

	url := resolver.Resolve(context.Background(), item, "https://files/variant.png")
	assert.Equal(t, "https://files/variant.png", url)
}

func TestArtworkPresetURLBeatsCollectionLookup(t *testing.T) {
	resolver := NewArtworkResolver(&stubArtworkRepo{
		artworks: map[string]*domain.Artwork{
			"art_1": {ID: "art_1", ImageURL: "https://cdn/stored.png"},
		},
	}, zap.NewNop())

	item := domain.OrderItem{
		Title:    "Poster",
		Metadata: domain.FulfillmentMetadata{ArtworkID: "art_1", ArtworkURL: "https://cdn/preset.png"},
	}

	url := resolver.Resolve(context.Background(), item, "")
	assert.Equal(t, "https://cdn/preset.png", url)
}

func TestArtworkFallsBackToCollection(t *testing.T) {
	resolver := NewArtworkResolver(&stubArtworkRepo{
		artworks: map[string]*domain.Artwork{
			"art_1": {ID: "art_1", ImageURL: "https://cdn/stored.png"},
		},
	}, zap.NewNop())

	item := domain.OrderItem{
		Title:           "Poster",
		ProductMetadata: domain.FulfillmentMetadata{ArtworkID: "art_1"},
	}

	url := resolver.Resolve(context.Background(), item, "")
	assert.Equal(t, "https://cdn/stored.png", url)
}

func TestArtworkLookupFailureMeansNoArtwork(t *testing.T) {
	resolver := NewArtworkResolver(&stubArtworkRepo{
		err: fmt.Errorf("connection refused"),
	}, zap.NewNop())

	item := domain.OrderItem{
		Title:    "Poster",
		Metadata: domain.FulfillmentMetadata{ArtworkID: "art_1"},
	}

	url := resolver.Resolve(context.Background(), item, "")
	assert.Equal(t, "", url)
}

func TestArtworkNoneWithoutReference(t *testing.T) {
	resolver := NewArtworkResolver(&stubArtworkRepo{}, zap.NewNop())

	url := resolver.Resolve(context.Background(), domain.OrderItem{Title: "Poster"}, "")
	assert.Equal(t, "", url)
}
