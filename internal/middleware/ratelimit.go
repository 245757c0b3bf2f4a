package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"warbler/backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CheckRateLimit checks if a resource has exceeded its rate limit.
// Returns true if allowed, false if limit exceeded.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	// The key is only ever created with its TTL, inside one MULTI.
	var incr *redis.IntCmd
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// RateLimit returns a gin middleware enforcing limit requests per window.
// It keys by authenticated user (or remote IP) and fails open when Redis is
// missing or unavailable.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		id := "ip:" + c.ClientIP()
		if uid, ok := auth.CurrentUserID(c); ok {
			id = fmt.Sprintf("user:%d", uid)
		}

		allowed, err := CheckRateLimit(c.Request.Context(), rdb, resource, id, limit, window)
		if err != nil {
			slog.Warn("rate limit unavailable, failing open", "resource", resource, "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded."})
			return
		}
		c.Next()
	}
}
