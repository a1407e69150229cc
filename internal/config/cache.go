package config

import (
	"time"
)

// CacheConfig defines settings for the response cache middleware used
// on the public catalog endpoints. When Enabled is false or no Redis
// client is configured, caching is disabled. Seat availability and
// recommendations are never cached: the first is hold-sensitive and
// the second has a view-count side effect.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
