package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/fieldsales/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the header clients send to deduplicate retried writes
const IdempotencyKeyHeader = "X-Idempotency-Key"

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store cache.IdempotencyStore
	// TTL is how long a processed key is remembered
	TTL    time.Duration
	Logger *zap.Logger
}

// DefaultIdempotencyConfig returns default idempotency configuration
func DefaultIdempotencyConfig(store cache.IdempotencyStore) IdempotencyConfig {
	return IdempotencyConfig{
		Store: store,
		TTL:   24 * time.Hour,
	}
}

// Idempotency returns a middleware that rejects replays of mutating requests
// carrying the same X-Idempotency-Key. Requests without the header pass
// through untouched. Store failures fail open: availability wins over
// duplicate protection.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}

		// Scope the key to agency, method, and path so the same client key
		// on different endpoints does not collide.
		storeKey := GetJWTAgencyID(c) + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key

		fresh, err := cfg.Store.MarkProcessed(c.Request.Context(), storeKey, cfg.TTL)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Idempotency store check failed",
					zap.String("key", key),
					zap.Error(err))
			}
			c.Next()
			return
		}

		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_REQUEST",
					"message": "A request with this idempotency key was already processed",
				},
			})
			return
		}

		c.Next()
	}
}
