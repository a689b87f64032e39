package middleware

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"eduscale-server-go/internal/apikey"
)

// APIKeyAuth validates the X-API-Key header against stored keys. A missing
// header is a 400, anything that fails validation is a 401.
func APIKeyAuth(keys *apikey.APIKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader("X-API-Key")
		if secret == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing API key"})
			c.Abort()
			return
		}

		key, err := keys.ValidateKey(secret)
		if err != nil {
			if !errors.Is(err, apikey.ErrInvalidKey) &&
				!errors.Is(err, apikey.ErrKeyRevoked) &&
				!errors.Is(err, apikey.ErrUsageLimitReached) {
				log.Printf("Error validating api key: %v", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}

		c.Set("api_key_id", key.ID)
		c.Next()
	}
}

// AdminAuth guards key management routes with a shared admin token from
// configuration.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
