package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/pkg/errors"
)

type artworkRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewArtworkRepository creates a new artwork repository
func NewArtworkRepository(db *sql.DB, logger *zap.Logger) *artworkRepository {
	return &artworkRepository{
		db:     db,
		logger: logger,
	}
}

func (r *artworkRepository) GetByID(ctx context.Context, id string) (*domain.Artwork, error) {
	query := `
		SELECT id, title, image_url, created_at
		FROM artworks
		WHERE id = $1
	`

	var artwork domain.Artwork
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&artwork.ID,
		&artwork.Title,
		&artwork.ImageURL,
		&artwork.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "artwork", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get artwork by ID", zap.Error(err))
		return nil, err
	}

	return &artwork, nil
}

type digitalProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDigitalProductRepository creates a new digital product repository
func NewDigitalProductRepository(db *sql.DB, logger *zap.Logger) *digitalProductRepository {
	return &digitalProductRepository{
		db:     db,
		logger: logger,
	}
}

func (r *digitalProductRepository) List(ctx context.Context) ([]*domain.DigitalProduct, error) {
	query := `
		SELECT id, name, description, file_size, mime_type
		FROM digital_products
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list digital products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*domain.DigitalProduct
	for rows.Next() {
		var p domain.DigitalProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.FileSize, &p.MimeType); err != nil {
			continue
		}
		products = append(products, &p)
	}

	return products, rows.Err()
}

func (r *digitalProductRepository) GetByID(ctx context.Context, id string) (*domain.DigitalProduct, error) {
	query := `
		SELECT id, name, description, file_size, mime_type
		FROM digital_products
		WHERE id = $1
	`

	var p domain.DigitalProduct
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.FileSize, &p.MimeType)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "digital product", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get digital product by ID", zap.Error(err))
		return nil, err
	}

	return &p, nil
}
