package cache

// CacheConfig selects and sizes the cache backend
type CacheConfig struct {
	// RedisURL selects the Redis backend when set
	RedisURL string
	// Prefix namespaces every Redis key
	Prefix string
	// MaxEntries bounds the in-memory backend
	MaxEntries int
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Prefix:     "activity:",
		MaxEntries: 512,
	}
}
