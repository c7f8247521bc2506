package middleware

import (
	"fmt"
	"time"

	"acadmin/utils/cache"
	"acadmin/utils/response"

	"github.com/gofiber/fiber/v2"
)

// WriteThrottle caps the rate of admin mutation requests per client IP using
// Redis counters. When Redis is unreachable requests pass through: cache
// trouble must not take down the write path.
type WriteThrottle struct {
	redisCache *cache.RedisCache
	maxWrites  int64
	window     time.Duration
}

// NewWriteThrottle creates a throttle allowing maxWrites mutations per
// window and IP.
func NewWriteThrottle(redisCache *cache.RedisCache, maxWrites int64, window time.Duration) *WriteThrottle {
	return &WriteThrottle{
		redisCache: redisCache,
		maxWrites:  maxWrites,
		window:     window,
	}
}

// Limit is the middleware applied to mutation routes.
func (t *WriteThrottle) Limit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		key := fmt.Sprintf("write_throttle:%s", c.IP())

		count, err := t.redisCache.Increment(ctx, key)
		if err != nil {
			return c.Next()
		}

		if count == 1 {
			t.redisCache.Expire(ctx, key, t.window)
		}

		if count > t.maxWrites {
			ttl, _ := t.redisCache.TTL(ctx, key)
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = int(t.window.Seconds())
			}

			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Write limit reached. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}
