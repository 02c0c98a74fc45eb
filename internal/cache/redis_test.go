package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birddigital/avax-l1-explorer/internal/testutil"
)

type testData struct {
	ID    int
	Name  string
	Value float64
}

// testRedisCache creates a test Redis cache, skipping when Redis is down
func testRedisCache(t *testing.T) *RedisCache {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	config := Config{
		Addr:      testutil.GetTestRedisAddr(),
		DB:        1, // Use test database
		Strategy:  DefaultTTLStrategy(),
		KeyPrefix: "test",
	}

	redisCache, err := NewRedisCache(context.Background(), config)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}

	// Clean test database
	ctx := context.Background()
	_ = redisCache.Flush(ctx)

	t.Cleanup(func() {
		_ = redisCache.Flush(ctx)
		_ = redisCache.Close()
	})

	return redisCache
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache := testRedisCache(t)
	ctx := context.Background()

	data := &testData{
		ID:    123,
		Name:  "test",
		Value: 45.67,
	}

	err := cache.Set(ctx, "test:key", data, 1*time.Minute)
	require.NoError(t, err)

	var retrieved testData
	err = cache.Get(ctx, "test:key", &retrieved)
	require.NoError(t, err)
	assert.Equal(t, *data, retrieved)
}

func TestRedisCache_Get_NotFound(t *testing.T) {
	cache := testRedisCache(t)

	var data testData
	err := cache.Get(context.Background(), "nonexistent:key", &data)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "not in cache")
}

func TestRedisCache_Expiration(t *testing.T) {
	cache := testRedisCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "test:expires", &testData{ID: 1}, 100*time.Millisecond)
	require.NoError(t, err)

	var retrieved testData
	require.NoError(t, cache.Get(ctx, "test:expires", &retrieved))

	time.Sleep(200 * time.Millisecond)
	assert.ErrorIs(t, cache.Get(ctx, "test:expires", &retrieved), ErrCacheMiss)
}

func TestRedisCache_BatchSetDeleteFlush(t *testing.T) {
	cache := testRedisCache(t)
	ctx := context.Background()

	items := map[string]any{
		NetworkKey("a"): testData{ID: 1},
		NetworkKey("b"): testData{ID: 2},
		NetworkListKey:  []testData{{ID: 1}, {ID: 2}},
	}
	require.NoError(t, cache.BatchSet(ctx, items, time.Minute))

	ttl, err := testutil.TestRedisClient(t).TTL(ctx, "test:"+NetworkKey("a")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, cache.Delete(ctx, NetworkKey("a")))
	var got testData
	assert.ErrorIs(t, cache.Get(ctx, NetworkKey("a"), &got), ErrCacheMiss)
	require.NoError(t, cache.Get(ctx, NetworkKey("b"), &got))
	assert.Equal(t, 2, got.ID)

	require.NoError(t, cache.Flush(ctx))
	assert.ErrorIs(t, cache.Get(ctx, NetworkKey("b"), &got), ErrCacheMiss)
}

func TestRedisCache_Stats(t *testing.T) {
	cache := testRedisCache(t)

	stats, err := cache.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "redis", stats["backend"])
	assert.Contains(t, stats, "strategy")
}

func TestStrategyByName(t *testing.T) {
	assert.Equal(t, AggressiveTTLStrategy(), StrategyByName("aggressive"))
	assert.Equal(t, ConservativeTTLStrategy(), StrategyByName("conservative"))
	assert.Equal(t, DefaultTTLStrategy(), StrategyByName("default"))
	assert.Equal(t, DefaultTTLStrategy(), StrategyByName("bogus"))
}

func TestRedisCache_FlushKeepsForeignKeys(t *testing.T) {
	cache := testRedisCache(t)
	raw := testutil.TestRedisClient(t)
	ctx := context.Background()

	require.NoError(t, raw.Set(ctx, "other:key", "keep", 0).Err())
	require.NoError(t, cache.Set(ctx, NetworkKey("l1-gunz"), testData{ID: 1}, time.Minute))

	exists, err := raw.Exists(ctx, "test:"+NetworkKey("l1-gunz")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	require.NoError(t, cache.Flush(ctx))

	val, err := raw.Get(ctx, "other:key").Result()
	require.NoError(t, err)
	assert.Equal(t, "keep", val)
}
