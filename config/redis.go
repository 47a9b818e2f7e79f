package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when REDIS_ADDR is unset or unreachable; callers
// then skip caching.
func ConnectRedis(ctx context.Context, cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR is not set, public content caching is disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Could not connect to Redis", "addr", cfg.RedisAddr, "error", err)
		rdb.Close()
		return nil
	}

	slog.Info("Connected to Redis", "addr", cfg.RedisAddr)
	return rdb
}
