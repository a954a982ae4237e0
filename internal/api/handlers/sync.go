package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/internal/service"
	"github.com/sencommerce/podbridge/pkg/errors"
)

// ProductSyncRequest is the POST /admin/product-sync payload
type ProductSyncRequest struct {
	Action     string   `json:"action" binding:"required"`
	Provider   string   `json:"provider"`
	ProductIDs []string `json:"product_ids"`
}

// HandleGetProductSync handles GET /admin/product-sync
func HandleGetProductSync(syncService *service.SyncService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := syncService.Overview(c.Request.Context())
		if err != nil {
			logger.Error("Failed to fetch sync data", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sync data"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"logs":               overview.Logs,
			"stats":              overview.Stats,
			"available_products": overview.AvailableProducts,
		})
	}
}

// HandlePostProductSync handles POST /admin/product-sync. import_products
// runs synchronously and returns the batch result; every other action is
// queued and the caller polls the returned syncId.
func HandlePostProductSync(syncService *service.SyncService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductSyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		provider := req.Provider
		if provider == "" {
			provider = service.ProviderPrintful
		}

		if req.Action == string(domain.SyncTypeImportProducts) {
			result, err := syncService.ImportProducts(c.Request.Context(), provider, req.ProductIDs)
			if err != nil {
				logger.Error("Failed to import products", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"success":           true,
				"imported":          result.Imported,
				"failed":            result.Failed,
				"imported_products": result.ImportedProducts,
				"errors":            result.Errors,
			})
			return
		}

		syncID, err := syncService.StartSync(c.Request.Context(), domain.SyncType(req.Action), provider)
		if err != nil {
			if _, ok := err.(*errors.ErrInvalidSyncAction); ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "validation failed",
					"details": err.Error(),
				})
				return
			}
			logger.Error("Failed to start sync", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start sync"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"syncId":  syncID,
		})
	}
}
