package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/config"
	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/internal/printful"
	"github.com/sencommerce/podbridge/internal/repository"
	"github.com/sencommerce/podbridge/pkg/errors"
)

// OrderService translates internal orders into Printful order requests,
// resolving provider variants and design artwork per line item.
type OrderService struct {
	client   ProviderAPI
	variants *variantResolver
	artworks *artworkResolver
	store    config.StoreConfig
	logger   *zap.Logger
}

// NewOrderService creates a new order translation service
func NewOrderService(
	client ProviderAPI,
	repos *repository.Repositories,
	store config.StoreConfig,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		client:   client,
		variants: NewVariantResolver(client, logger),
		artworks: NewArtworkResolver(repos.Artwork, logger),
		store:    store,
		logger:   logger,
	}
}

// CreateProviderOrder translates one internal order and submits it to
// Printful. Missing address, zero fulfillable items and an empty final
// payload abort the translation. Per-item resolution failures are soft:
// the item is skipped, recorded in SkippedItems, and the rest of the order
// still ships.
func (s *OrderService) CreateProviderOrder(ctx context.Context, order *domain.Order) (*ProviderOrderResult, error) {
	fulfillable := make([]domain.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		if item.EffectiveFulfillmentType() == domain.FulfillmentTypePrintfulPOD {
			fulfillable = append(fulfillable, item)
		}
	}

	s.logger.Info("Translating order for Printful",
		zap.String("order_id", order.ID),
		zap.Int("total_items", len(order.Items)),
		zap.Int("fulfillable_items", len(fulfillable)),
	)

	if len(fulfillable) == 0 {
		return nil, &errors.ErrNoFulfillableItems{Provider: ProviderPrintful}
	}

	if order.ShippingAddress == nil {
		return nil, &errors.ErrMissingShippingAddress{OrderID: order.ID}
	}

	request := &printful.OrderRequest{
		ExternalID: order.ID,
		Recipient:  buildRecipient(order),
		Items:      []printful.OrderItem{},
		RetailCosts: &printful.RetailCosts{
			Currency: orderCurrency(order),
			Subtotal: minorToDecimal(order.Subtotal),
			Shipping: minorToDecimal(order.ShippingTotal),
			Tax:      minorToDecimal(order.TaxTotal),
		},
		PackingSlip: &printful.PackingSlip{
			Email:   s.store.Email,
			Message: "Thank you for your order from SenCommerce!",
			LogoURL: s.store.LogoURL,
		},
	}

	var skipped []SkippedItem
	skip := func(item domain.OrderItem, reason string) {
		s.logger.Warn("Skipping order item",
			zap.String("order_id", order.ID),
			zap.String("item_title", item.Title),
			zap.String("reason", reason),
		)
		skipped = append(skipped, SkippedItem{Title: item.Title, Reason: reason})
	}

	for _, item := range fulfillable {
		printfulProductID := item.PrintfulProductRef()
		if printfulProductID == "" {
			skip(item, "no printful_product_id in metadata")
			continue
		}

		resolved, err := s.variants.Resolve(ctx, printfulProductID)
		if err != nil {
			skip(item, err.Error())
			continue
		}
		if resolved.CatalogVariantID == 0 {
			skip(item, "no catalog variant id on sync variant")
			continue
		}

		// The provider rejects variant_id items without a file
		artworkURL := s.artworks.Resolve(ctx, item, resolved.AttachedFileURL)
		if artworkURL == "" {
			skip(item, "no artwork available")
			continue
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		orderItem := printful.OrderItem{
			VariantID:   resolved.CatalogVariantID,
			Quantity:    quantity,
			RetailPrice: minorToDecimal(item.UnitPrice),
			Files: []printful.OrderFile{
				{Type: "default", URL: artworkURL},
			},
		}

		if needsStitchColor(item) {
			orderItem.Options = []printful.ItemOption{
				{ID: "stitch_color", Value: "white"},
			}
		}

		request.Items = append(request.Items, orderItem)
	}

	if len(request.Items) == 0 {
		return nil, &errors.ErrNoValidItems{OrderID: order.ID}
	}

	created, err := s.client.CreateOrder(ctx, request)
	if err != nil {
		// Provider status and body surface unchanged so the caller can report
		// actionable diagnostics
		return nil, err
	}

	s.logger.Info("Created Printful order",
		zap.String("order_id", order.ID),
		zap.Int64("printful_order_id", created.ID),
		zap.Int("items", len(request.Items)),
		zap.Int("skipped", len(skipped)),
	)

	return &ProviderOrderResult{
		PrintfulOrderID: strconv.FormatInt(created.ID, 10),
		Order:           created,
		SkippedItems:    skipped,
	}, nil
}

func buildRecipient(order *domain.Order) printful.Recipient {
	addr := order.ShippingAddress
	name := strings.TrimSpace(addr.FirstName + " " + addr.LastName)

	return printful.Recipient{
		Name:        name,
		Company:     addr.Company,
		Address1:    addr.Address1,
		Address2:    addr.Address2,
		City:        addr.City,
		StateCode:   addr.Province,
		CountryCode: addr.CountryCode,
		Zip:         addr.PostalCode,
		Phone:       addr.Phone,
		Email:       order.Email,
	}
}

func orderCurrency(order *domain.Order) string {
	if order.CurrencyCode == "" {
		return "EUR"
	}
	return strings.ToUpper(order.CurrencyCode)
}

// minorToDecimal converts integer minor-currency units to the decimal string
// form the provider expects, e.g. 5550 -> "55.50"
func minorToDecimal(amount int64) string {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// needsStitchColor reports whether an item requires the embroidery
// stitch-color option
func needsStitchColor(item domain.OrderItem) bool {
	if item.Metadata.ProductType == "embroidery" || item.ProductMetadata.ProductType == "embroidery" {
		return true
	}
	title := strings.ToLower(item.Title)
	return strings.Contains(title, "vest") || strings.Contains(title, "hat")
}
