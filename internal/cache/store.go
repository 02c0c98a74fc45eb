// Package cache provides the key/value cache used for network listings,
// backed by Redis with an in-memory fallback.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrCacheMiss is returned by Get when a key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Store is a JSON value cache with per-entry TTLs
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	BatchSet(ctx context.Context, items map[string]any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (map[string]any, error)
}

// Key helpers shared by the cache users
const (
	NetworkListKey = "networks:list"
)

// NetworkKey is the cache key of a single network
func NetworkKey(id string) string {
	return "networks:" + id
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is a process-local Store. Expired entries are dropped lazily.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get implements Store
func (m *MemoryCache) Get(ctx context.Context, key string, dest any) error {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || (!e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)) {
		return fmt.Errorf("key %s not in cache: %w", key, ErrCacheMiss)
	}
	return json.Unmarshal(e.data, dest)
}

// Set implements Store. A non-positive ttl never expires.
func (m *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// BatchSet implements Store. Either every item is stored or none is.
func (m *MemoryCache) BatchSet(ctx context.Context, items map[string]any, ttl time.Duration) error {
	encoded := make(map[string][]byte, len(items))
	for key, value := range items {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
		}
		encoded[key] = data
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	for key, data := range encoded {
		m.entries[key] = memoryEntry{data: data, expiresAt: expiresAt}
	}
	m.mu.Unlock()
	return nil
}

// Delete implements Store
func (m *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

// Flush implements Store
func (m *MemoryCache) Flush(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Ping implements Store
func (m *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored entries, expired or not
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Stats implements Store
func (m *MemoryCache) Stats(ctx context.Context) (map[string]any, error) {
	return map[string]any{
		"backend": "memory",
		"entries": m.Len(),
	}, nil
}

// Options selects and configures the cache backend
type Options struct {
	RedisEnabled bool
	Redis        Config
}

// NewStore connects to Redis when enabled and falls back to an in-memory
// cache when Redis is disabled or unreachable. The returned close function
// releases the backend. The store is instrumented with hit/miss metrics.
func NewStore(ctx context.Context, opts Options, logger zerolog.Logger) (Store, func() error) {
	if opts.RedisEnabled {
		rc, err := NewRedisCache(ctx, opts.Redis)
		if err == nil {
			logger.Info().Str("addr", opts.Redis.Addr).Msg("redis_cache_connected")
			return Instrument(rc, "redis"), rc.Close
		}
		logger.Warn().Err(err).Str("addr", opts.Redis.Addr).Msg("redis_unavailable_using_memory_cache")
	}
	return Instrument(NewMemoryCache(), "memory"), func() error { return nil }
}

// kind extracts the key namespace used as a metric label
func kind(key string) string {
	if key == NetworkListKey {
		return "network_list"
	}
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
