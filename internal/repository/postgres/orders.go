package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a read-only view over the commerce system's
// order tables; the bridge never writes orders.
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, email, currency_code, subtotal, shipping_total, tax_total,
		       shipping_first_name, shipping_last_name, shipping_company,
		       shipping_address_1, shipping_address_2, shipping_city,
		       shipping_province, shipping_country_code, shipping_postal_code,
		       shipping_phone
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	var addr domain.Address
	var firstName, lastName, company, address1, address2, city sql.NullString
	var province, countryCode, postalCode, phone sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.Email,
		&order.CurrencyCode,
		&order.Subtotal,
		&order.ShippingTotal,
		&order.TaxTotal,
		&firstName,
		&lastName,
		&company,
		&address1,
		&address2,
		&city,
		&province,
		&countryCode,
		&postalCode,
		&phone,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	if address1.Valid {
		addr.FirstName = firstName.String
		addr.LastName = lastName.String
		addr.Company = company.String
		addr.Address1 = address1.String
		addr.Address2 = address2.String
		addr.City = city.String
		addr.Province = province.String
		addr.CountryCode = countryCode.String
		addr.PostalCode = postalCode.String
		addr.Phone = phone.String
		order.ShippingAddress = &addr
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *orderRepository) getItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `
		SELECT i.id, i.title, i.quantity, i.unit_price,
		       i.fulfillment_type, i.printful_product_id, i.artwork_id,
		       i.artwork_url, i.product_type,
		       p.fulfillment_type, p.printful_product_id, p.artwork_id,
		       p.artwork_url, p.product_type
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to get order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var itemFT, itemPID, itemAID, itemAURL, itemPT sql.NullString
		var prodFT, prodPID, prodAID, prodAURL, prodPT sql.NullString

		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Quantity,
			&item.UnitPrice,
			&itemFT, &itemPID, &itemAID, &itemAURL, &itemPT,
			&prodFT, &prodPID, &prodAID, &prodAURL, &prodPT,
		)
		if err != nil {
			continue
		}

		item.Metadata = domain.FulfillmentMetadata{
			FulfillmentType:   domain.FulfillmentType(itemFT.String),
			PrintfulProductID: itemPID.String,
			ArtworkID:         itemAID.String,
			ArtworkURL:        itemAURL.String,
			ProductType:       itemPT.String,
		}
		item.ProductMetadata = domain.FulfillmentMetadata{
			FulfillmentType:   domain.FulfillmentType(prodFT.String),
			PrintfulProductID: prodPID.String,
			ArtworkID:         prodAID.String,
			ArtworkURL:        prodAURL.String,
			ProductType:       prodPT.String,
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
