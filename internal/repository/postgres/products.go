package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `
	id, title, description, status, thumbnail_url, sku,
	price_amount, currency_code, sales_channel_id,
	fulfillment_type, printful_product_id, digital_product_id,
	artwork_id, artwork_url, product_type, source_provider,
	created_at, updated_at
`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Status,
		product.ThumbnailURL,
		product.SKU,
		product.PriceAmount,
		product.CurrencyCode,
		nullString(product.SalesChannelID),
		product.Metadata.FulfillmentType,
		nullString(product.Metadata.PrintfulProductID),
		nullString(product.Metadata.DigitalProductID),
		nullString(product.Metadata.ArtworkID),
		nullString(product.Metadata.ArtworkURL),
		nullString(product.Metadata.ProductType),
		nullString(product.Metadata.SourceProvider),
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		// The partial unique indexes on (source_provider, provider ref) are
		// the dedup authority; the exists check in the sync engine is only a
		// fast path and loses under concurrent imports
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &errors.ErrAlreadyImported{ProviderProductID: providerRef(product)}
		}
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

func providerRef(product *domain.Product) string {
	if product.Metadata.PrintfulProductID != "" {
		return product.Metadata.PrintfulProductID
	}
	return product.Metadata.DigitalProductID
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Error(err))
		return nil, err
	}

	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *productRepository) ListProviderProductIDs(ctx context.Context, provider string) ([]string, error) {
	query := `
		SELECT COALESCE(printful_product_id, digital_product_id, '')
		FROM products
		WHERE source_provider = $1
	`

	rows, err := r.db.QueryContext(ctx, query, provider)
	if err != nil {
		r.logger.Error("Failed to list provider product IDs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		if id != "" {
			ids = append(ids, id)
		}
	}

	return ids, rows.Err()
}

func (r *productRepository) ExistsByProviderProductID(ctx context.Context, provider, providerProductID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM products
			WHERE source_provider = $1
			  AND (printful_product_id = $2 OR digital_product_id = $2)
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, provider, providerProductID).Scan(&exists); err != nil {
		r.logger.Error("Failed to check product existence", zap.Error(err))
		return false, err
	}

	return exists, nil
}

func (r *productRepository) UpdatePrice(ctx context.Context, id uuid.UUID, amount int64, currencyCode string) error {
	query := `
		UPDATE products
		SET price_amount = $2, currency_code = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, amount, currencyCode, time.Now())
	if err != nil {
		r.logger.Error("Failed to update product price", zap.Error(err))
		return err
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var salesChannelID, printfulID, digitalID, artworkID, artworkURL, productType, sourceProvider sql.NullString

	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Status,
		&product.ThumbnailURL,
		&product.SKU,
		&product.PriceAmount,
		&product.CurrencyCode,
		&salesChannelID,
		&product.Metadata.FulfillmentType,
		&printfulID,
		&digitalID,
		&artworkID,
		&artworkURL,
		&productType,
		&sourceProvider,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.SalesChannelID = salesChannelID.String
	product.Metadata.PrintfulProductID = printfulID.String
	product.Metadata.DigitalProductID = digitalID.String
	product.Metadata.ArtworkID = artworkID.String
	product.Metadata.ArtworkURL = artworkURL.String
	product.Metadata.ProductType = productType.String
	product.Metadata.SourceProvider = sourceProvider.String

	return &product, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
