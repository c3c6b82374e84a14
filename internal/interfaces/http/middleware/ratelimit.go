package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
	"github.com/tiffin-inc/tiffin/internal/shared/utils"
)

// Limiter is satisfied by ratelimit.RedisRateLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimiter throttles requests per authenticated user, falling back to the
// client IP for anonymous callers.
type RateLimiter struct {
	limiter Limiter
	logger  logger.Interface
}

// NewRateLimiter returns a pass-through limiter when limiter is nil.
func NewRateLimiter(limiter Limiter, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		logger:  logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter == nil {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			key = fmt.Sprintf("user:%v", userID)
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Redis unavailable: let the request through
			rl.logger.Warnw("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", "60")
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
