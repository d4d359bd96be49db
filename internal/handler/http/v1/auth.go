package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/sirupsen/logrus"
)

const apiKeyHeader = "X-API-Key"

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу.
// Ключ принимается из X-API-Key или Authorization: Bearer.
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := requestAPIKey(c)
		entry := log.WithFields(logrus.Fields{
			"path":   c.FullPath(),
			"client": c.ClientIP(),
		})

		if apiKey == "" {
			entry.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		if !validAPIKey(cfg.APIKeys, apiKey) {
			entry.Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

func requestAPIKey(c *gin.Context) string {
	if key := c.GetHeader(apiKeyHeader); key != "" {
		return key
	}
	if auth, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(auth)
	}
	return ""
}

func validAPIKey(keys []string, candidate string) bool {
	valid := false
	for _, key := range keys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(candidate)) == 1 {
			valid = true
		}
	}
	return valid
}
