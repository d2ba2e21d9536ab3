package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sellerhub-backend/internal/services"
)

// AuthMiddleware resolves the current seller from the bearer token
type AuthMiddleware struct {
	sessionService *services.SessionService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(sessionService *services.SessionService) *AuthMiddleware {
	return &AuthMiddleware{sessionService: sessionService}
}

// SellerRequired rejects requests that do not resolve to an active
// seller. Missing, invalid and blacklisted tokens all surface the same
// way; only a storage fault is a 500.
func (m *AuthMiddleware) SellerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authorization header required",
			})
			c.Abort()
			return
		}

		seller, err := m.sessionService.CurrentSeller(token)
		if err != nil {
			log.Printf("Error resolving current seller: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to resolve session",
			})
			c.Abort()
			return
		}
		if seller == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not signed in as an active seller",
			})
			c.Abort()
			return
		}

		c.Set("sellerID", seller.ID)
		c.Set("seller", seller)
		c.Set("token", token)

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// SellerID returns the authenticated seller id from the context.
func SellerID(c *gin.Context) string {
	return c.GetString("sellerID")
}
