package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medlog/internal/infrastructure/ratelimit"
	"medlog/internal/shared/logger"
	"medlog/internal/shared/utils"
)

// RateLimitMiddleware applies per-IP limits from the shared limiter. When
// the limiter backend is unavailable requests pass through; availability of
// the kiosks outranks strict limiting.
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
	}
}

func (m *RateLimitMiddleware) LimitByIP(prefix string, config ratelimit.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}

		key := prefix + ":" + c.ClientIP()
		allowed, err := m.limiter.Allow(key, config)
		if err != nil {
			m.logger.Warnw("rate limiter unavailable", "error", err, "key", key)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
