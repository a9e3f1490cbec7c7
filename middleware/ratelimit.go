package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/config"
	"github.com/oficiossde/directorio-api/util"
)

// RateLimitConfig describes a fixed-window limit per client IP.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	Prefix string
}

// RateLimiter enforces a Redis-backed fixed-window rate limit. When Redis is
// unavailable the limiter fails open so the API stays usable.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Prefix == "" {
		cfg.Prefix = "ratelimit"
	}
	return func(c *gin.Context) {
		rdb := config.GetRedisClient()
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, c.ClientIP(), time.Now().Unix()/int64(cfg.Window.Seconds()))
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, cfg.Window)
		}
		if count > int64(cfg.Limit) {
			util.LogRateLimitExceeded("", c.ClientIP(), c.Request.URL.Path)
			c.JSON(429, util.APIResponse{
				Success: false,
				Error:   "rate limit exceeded",
				Msg:     "Too many requests, please try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
