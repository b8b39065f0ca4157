package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/coldtrail/internal/model"
)

// Cache is the storage interface shared by page and geocode caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives a stable key from a URL or lookup string. The version
// segment invalidates every entry when the cached format changes.
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "coldtrail:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds the layered cache the pipeline uses, or nil when
// caching is disabled
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
