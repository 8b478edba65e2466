package di

import (
	"github.com/redis/go-redis/v9"

	"thaivest_backend/internal/platform/cache"
)

// NewCacheStore creates the cache-aside store. With Redis available it is
// Redis-backed; otherwise it falls back to the in-process map so the read
// path keeps working on a single instance.
func NewCacheStore(rdb *redis.Client) *cache.Store {
	return cache.NewStore(rdb)
}
