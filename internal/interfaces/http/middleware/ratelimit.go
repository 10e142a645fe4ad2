package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/interfaces/http/response"
	"auto-concierge.backend/pkg/logger"
	"auto-concierge.backend/pkg/redis"
)

// RateLimit applies a fixed-window per-IP limit backed by Redis. The
// window counter expires on its own; Redis being unavailable fails open
// so the storefront stays up.
func RateLimit(scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())
		ctx := c.Request.Context()

		count, err := redis.Incr(ctx, key)
		if err != nil {
			logger.Warn(ctx, "rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := redis.Expire(ctx, key, window); err != nil {
				logger.Warn(ctx, "rate limiter expire failed", zap.String("scope", scope), zap.Error(err))
			}
		}

		if count > int64(limit) {
			response.AbortError(c, domainerrors.NewAppError(
				http.StatusTooManyRequests, "ERR_RATE_LIMITED", "too many requests, slow down", nil))
			return
		}
		c.Next()
	}
}
