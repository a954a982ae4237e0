package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sencommerce/podbridge/internal/config"
)

// AdminAuthMiddleware guards the admin sync surface with a single bearer
// API key verified against a bcrypt hash from configuration. When no hash is
// configured the check is skipped outside production.
func AdminAuthMiddleware(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.API.AdminKeyHash == "" {
			if cfg.Environment == "production" {
				logger.Error("ADMIN_API_KEY_HASH not configured in production")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		apiKey := strings.TrimPrefix(authHeader, "Bearer ")
		if apiKey == "" || apiKey == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.API.AdminKeyHash), []byte(apiKey)); err != nil {
			logger.Warn("Rejected admin request with invalid API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Next()
	}
}
