package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	m := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", testData{ID: 7, Name: "seven"}, time.Minute))

	var got testData
	require.NoError(t, m.Get(ctx, "k", &got))
	assert.Equal(t, testData{ID: 7, Name: "seven"}, got)

	require.NoError(t, m.Delete(ctx, "k"))
	assert.ErrorIs(t, m.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryCache()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "short", 1, time.Second))
	require.NoError(t, m.Set(ctx, "forever", 2, 0))

	var v int
	require.NoError(t, m.Get(ctx, "short", &v))

	now = now.Add(time.Second)
	assert.ErrorIs(t, m.Get(ctx, "short", &v), ErrCacheMiss)
	require.NoError(t, m.Get(ctx, "forever", &v))
	assert.Equal(t, 2, v)
}

func TestMemoryCache_Flush(t *testing.T) {
	m := NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", 1, 0))
	require.NoError(t, m.Set(ctx, "b", 2, 0))

	require.NoError(t, m.Flush(ctx))
	assert.Zero(t, m.Len())
	assert.NoError(t, m.Ping(ctx))
}

func TestMemoryCache_BatchSetAndStats(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryCache()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.BatchSet(ctx, map[string]any{
		NetworkKey("a"): testData{ID: 1},
		NetworkKey("b"): testData{ID: 2},
	}, time.Minute))

	var got testData
	require.NoError(t, m.Get(ctx, NetworkKey("b"), &got))
	assert.Equal(t, 2, got.ID)

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory", stats["backend"])
	assert.Equal(t, 2, stats["entries"])

	now = now.Add(time.Minute)
	assert.ErrorIs(t, m.Get(ctx, NetworkKey("a"), &got), ErrCacheMiss)

	// unencodable values leave the cache untouched
	err = m.BatchSet(ctx, map[string]any{"ok": 1, "bad": make(chan int)}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, m.Get(ctx, "ok", new(int)), ErrCacheMiss)
}

func TestNewStore_FallsBackToMemory(t *testing.T) {
	opts := Options{
		RedisEnabled: true,
		Redis:        Config{Addr: "127.0.0.1:1", Strategy: DefaultTTLStrategy()},
	}

	store, closeFn := NewStore(context.Background(), opts, zerolog.Nop())
	defer closeFn()

	inst, ok := store.(*instrumented)
	require.True(t, ok)
	assert.Equal(t, "memory", inst.backend)
	_, isMemory := inst.Store.(*MemoryCache)
	assert.True(t, isMemory)
}

func TestInstrument_CountsHitsAndMisses(t *testing.T) {
	store := Instrument(NewMemoryCache(), "memory_test")
	ctx := context.Background()

	var v int
	_ = store.Get(ctx, NetworkListKey, &v)
	require.NoError(t, store.Set(ctx, NetworkListKey, 1, 0))
	require.NoError(t, store.Get(ctx, NetworkListKey, &v))
	require.NoError(t, store.Get(ctx, NetworkListKey, &v))

	assert.Equal(t, 2.0, testutil.ToFloat64(cacheHits.WithLabelValues("memory_test", "network_list")))
	assert.Equal(t, 1.0, testutil.ToFloat64(cacheMisses.WithLabelValues("memory_test", "network_list")))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "network_list", kind(NetworkListKey))
	assert.Equal(t, "networks", kind(NetworkKey("abc")))
	assert.Equal(t, "plain", kind("plain"))
}
