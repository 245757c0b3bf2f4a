package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect returns a Redis client for addr, which may be a redis:// URL or a
// bare host:port. An empty addr or an unreachable server yields a nil client
// so callers can run without Redis.
func Connect(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		slog.Info("REDIS_URL not set, running without redis")
		return nil
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			slog.Warn("invalid REDIS_URL, continuing without redis", "error", err)
			return nil
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, continuing without redis", "error", fmt.Sprint(err))
		client.Close()
		return nil
	}

	slog.Info("redis connected successfully")
	return client
}
