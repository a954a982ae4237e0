package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/api/handlers"
	"github.com/sencommerce/podbridge/internal/api/middleware"
	"github.com/sencommerce/podbridge/internal/config"
	"github.com/sencommerce/podbridge/internal/repository"
	"github.com/sencommerce/podbridge/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	syncService *service.SyncService,
	orderService *service.OrderService,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Admin sync surface
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AdminAuthMiddleware(cfg, logger))
	{
		adminRoutes.GET("/product-sync", handlers.HandleGetProductSync(syncService, logger))
		adminRoutes.POST("/product-sync", handlers.HandlePostProductSync(syncService, logger))
	}

	// Store order surface. Unauthenticated, orders are created after
	// successful checkout
	storeRoutes := router.Group("/store")
	{
		storeRoutes.POST("/printful/orders/create", handlers.HandleCreatePrintfulOrder(repos, orderService, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
