package cache

import (
	"context"
	"log/slog"
)

// Open returns a Redis backend when cfg.RedisURL is set and reachable, and the
// in-memory backend otherwise. The second result names the backend in use.
func Open(ctx context.Context, cfg CacheConfig) (CacheBackend, string) {
	if cfg.RedisURL != "" {
		slog.Info("initializing Redis cache")
		rc, err := NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix)
		if err == nil {
			slog.Info("Redis cache initialized")
			return rc, "redis"
		}
		slog.Warn("Redis connection failed, using memory cache", "error", err)
	}

	slog.Info("initializing in-memory cache", "max_entries", cfg.MaxEntries)
	return NewMemoryCache(cfg.MaxEntries), "memory"
}
