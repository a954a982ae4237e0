package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/internal/printful"
	"github.com/sencommerce/podbridge/internal/repository"
	"github.com/sencommerce/podbridge/internal/service"
	"github.com/sencommerce/podbridge/pkg/errors"
)

// CreatePrintfulOrderRequest is the POST /store/printful/orders/create
// payload. OrderData is optional; without it the order is loaded from the
// commerce database.
type CreatePrintfulOrderRequest struct {
	MedusaOrderID string     `json:"medusa_order_id"`
	OrderData     *OrderData `json:"order_data"`
}

type OrderData struct {
	Email           string          `json:"email"`
	CurrencyCode    string          `json:"currency_code"`
	Subtotal        int64           `json:"subtotal"`
	ShippingTotal   int64           `json:"shipping_total"`
	TaxTotal        int64           `json:"tax_total"`
	ShippingAddress *AddressData    `json:"shipping_address"`
	Items           []OrderItemData `json:"items"`
}

type AddressData struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2"`
	City        string `json:"city"`
	Province    string `json:"province"`
	CountryCode string `json:"country_code"`
	PostalCode  string `json:"postal_code"`
	Phone       string `json:"phone"`
}

type OrderItemData struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Quantity  int          `json:"quantity"`
	UnitPrice int64        `json:"unit_price"`
	Metadata  MetadataData `json:"metadata"`
	Product   *ProductData `json:"product"`
}

type ProductData struct {
	Metadata MetadataData `json:"metadata"`
}

type MetadataData struct {
	FulfillmentType   string `json:"fulfillment_type"`
	PrintfulProductID string `json:"printful_product_id"`
	ArtworkID         string `json:"artwork_id"`
	ArtworkURL        string `json:"artwork_url"`
	ProductType       string `json:"product_type"`
}

// HandleCreatePrintfulOrder handles POST /store/printful/orders/create
func HandleCreatePrintfulOrder(
	repos *repository.Repositories,
	orderService *service.OrderService,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePrintfulOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		if req.MedusaOrderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "medusa_order_id is required"})
			return
		}

		var order *domain.Order
		if req.OrderData != nil {
			order = toDomainOrder(req.MedusaOrderID, req.OrderData)
		} else {
			loaded, err := repos.Order.GetByID(c.Request.Context(), req.MedusaOrderID)
			if err != nil {
				if _, ok := err.(*errors.ErrNotFound); ok {
					c.JSON(http.StatusNotFound, gin.H{"error": "Order not found and no order_data provided"})
					return
				}
				logger.Error("Failed to retrieve order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			order = loaded
		}

		result, err := orderService.CreateProviderOrder(c.Request.Context(), order)
		if err != nil {
			writeOrderError(c, err, logger)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"medusa_order_id":   req.MedusaOrderID,
			"printful_order_id": result.PrintfulOrderID,
			"printful_order":    result.Order,
			"skipped_items":     result.SkippedItems,
			"message":           "Printful order created successfully",
		})
	}
}

// writeOrderError maps translation failures to HTTP responses. Provider
// errors pass their status code and body through unchanged.
func writeOrderError(c *gin.Context, err error, logger *zap.Logger) {
	switch e := err.(type) {
	case *errors.ErrNoFulfillableItems,
		*errors.ErrMissingShippingAddress,
		*errors.ErrNoValidItems:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case *printful.APIError:
		body := gin.H{
			"error":  "Failed to create Printful order",
			"status": e.StatusCode,
		}
		if json.Valid([]byte(e.Body)) {
			body["printful_error"] = json.RawMessage(e.Body)
		} else {
			body["printful_error"] = e.Body
		}
		c.JSON(e.StatusCode, body)
	default:
		logger.Error("Failed to create Printful order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create Printful order",
			"details": err.Error(),
		})
	}
}

func toDomainOrder(orderID string, data *OrderData) *domain.Order {
	order := &domain.Order{
		ID:            orderID,
		Email:         data.Email,
		CurrencyCode:  data.CurrencyCode,
		Subtotal:      data.Subtotal,
		ShippingTotal: data.ShippingTotal,
		TaxTotal:      data.TaxTotal,
	}

	if data.ShippingAddress != nil {
		order.ShippingAddress = &domain.Address{
			FirstName:   data.ShippingAddress.FirstName,
			LastName:    data.ShippingAddress.LastName,
			Company:     data.ShippingAddress.Company,
			Address1:    data.ShippingAddress.Address1,
			Address2:    data.ShippingAddress.Address2,
			City:        data.ShippingAddress.City,
			Province:    data.ShippingAddress.Province,
			CountryCode: data.ShippingAddress.CountryCode,
			PostalCode:  data.ShippingAddress.PostalCode,
			Phone:       data.ShippingAddress.Phone,
		}
	}

	for _, item := range data.Items {
		orderItem := domain.OrderItem{
			ID:        item.ID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Metadata:  toDomainMetadata(item.Metadata),
		}
		if item.Product != nil {
			orderItem.ProductMetadata = toDomainMetadata(item.Product.Metadata)
		}
		order.Items = append(order.Items, orderItem)
	}

	return order
}

func toDomainMetadata(m MetadataData) domain.FulfillmentMetadata {
	return domain.FulfillmentMetadata{
		FulfillmentType:   domain.FulfillmentType(m.FulfillmentType),
		PrintfulProductID: m.PrintfulProductID,
		ArtworkID:         m.ArtworkID,
		ArtworkURL:        m.ArtworkURL,
		ProductType:       m.ProductType,
	}
}
