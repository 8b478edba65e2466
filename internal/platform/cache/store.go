// Package cache provides the cache-aside store in front of expensive lookups.
//
// The store is backed by Redis and degrades to an in-process map for the
// lifetime of the process when Redis is unavailable at startup. Every
// operation is fail-soft: backing-store errors are logged and absorbed, so
// cache unavailability never fails a calling request. The cache is an
// accelerator, not a source of truth.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// categoryTTL maps a logical cache category to its time-to-live.
var categoryTTL = map[string]time.Duration{
	"quote":            5 * time.Minute,
	"stock":            time.Hour,
	"etf":              time.Hour,
	"index_components": 24 * time.Hour,
	"etf_holdings":     24 * time.Hour,
	"search":           15 * time.Minute,
}

// defaultTTL applies to categories not present in the table.
const defaultTTL = time.Hour

// TTLFor returns the time-to-live for a cache category.
func TTLFor(category string) time.Duration {
	if ttl, ok := categoryTTL[category]; ok {
		return ttl
	}
	return defaultTTL
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Store is a key-value cache with JSON serialization and per-category TTLs.
type Store struct {
	rdb *redis.Client // nil once degraded to the in-process map

	mu     sync.RWMutex
	memory map[string]memoryEntry

	now func() time.Time // injectable for expiry tests
}

// NewStore builds a Store over the given Redis client. Pass nil to run on the
// in-process fallback from the start.
func NewStore(rdb *redis.Client) *Store {
	return &Store{
		rdb:    rdb,
		memory: make(map[string]memoryEntry),
		now:    time.Now,
	}
}

// Get loads the value stored under key into dest and reports whether a live
// entry was found. Corrupted entries are dropped and treated as absent.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	if s.rdb != nil {
		b, err := s.rdb.Get(ctx, key).Bytes()
		if err != nil {
			if err != redis.Nil {
				slog.Error("cache get failed", "key", key, "error", err)
			}
			return false
		}
		if err := json.Unmarshal(b, dest); err != nil {
			slog.Warn("dropping corrupted cache entry", "key", key, "error", err)
			_ = s.rdb.Del(ctx, key).Err()
			return false
		}
		return true
	}

	s.mu.RLock()
	entry, ok := s.memory[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if s.now().After(entry.expiresAt) {
		// Evict lazily so a long-lived degraded process does not pile up
		// dead entries.
		s.mu.Lock()
		if cur, ok := s.memory[key]; ok && s.now().After(cur.expiresAt) {
			delete(s.memory, key)
		}
		s.mu.Unlock()
		return false
	}
	return json.Unmarshal(entry.data, dest) == nil
}

// Set stores value under key with the TTL of the given category. Values must
// be JSON-serializable; failures are logged and ignored.
func (s *Store) Set(ctx context.Context, key string, value any, category string) {
	b, err := json.Marshal(value)
	if err != nil {
		slog.Error("cache set: marshal failed", "key", key, "error", err)
		return
	}
	ttl := TTLFor(category)

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
			slog.Error("cache set failed", "key", key, "error", err)
		}
		return
	}

	s.mu.Lock()
	s.memory[key] = memoryEntry{data: b, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
}

// Delete removes a single key. Missing keys and backend errors are ignored.
func (s *Store) Delete(ctx context.Context, key string) {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			slog.Error("cache delete failed", "key", key, "error", err)
		}
		return
	}

	s.mu.Lock()
	delete(s.memory, key)
	s.mu.Unlock()
}

// DeletePattern removes all keys matching a glob pattern such as
// "index_components:SPX:*". Redis keys are walked with SCAN so large keyspaces
// do not block the server.
func (s *Store) DeletePattern(ctx context.Context, pattern string) {
	if s.rdb != nil {
		var cursor uint64
		for {
			keys, cur, err := s.rdb.Scan(ctx, cursor, pattern, 200).Result()
			if err != nil {
				slog.Error("cache delete pattern failed", "pattern", pattern, "error", err)
				return
			}
			if len(keys) > 0 {
				if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
					slog.Error("cache delete pattern failed", "pattern", pattern, "error", err)
					return
				}
			}
			cursor = cur
			if cursor == 0 {
				return
			}
		}
	}

	prefix := strings.TrimSuffix(pattern, "*")
	s.mu.Lock()
	for k := range s.memory {
		if strings.HasPrefix(k, prefix) {
			delete(s.memory, k)
		}
	}
	s.mu.Unlock()
}
