package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLStrategy defines time-to-live durations for different data types
type TTLStrategy struct {
	NetworkList   time.Duration // Refreshed by the collector loop
	NetworkDetail time.Duration // Single network lookups
}

// DefaultTTLStrategy returns production-ready TTL values
func DefaultTTLStrategy() TTLStrategy {
	return TTLStrategy{
		NetworkList:   2 * time.Minute,
		NetworkDetail: 2 * time.Minute,
	}
}

// AggressiveTTLStrategy returns lower TTL values for high-churn deployments
func AggressiveTTLStrategy() TTLStrategy {
	return TTLStrategy{
		NetworkList:   30 * time.Second,
		NetworkDetail: 30 * time.Second,
	}
}

// ConservativeTTLStrategy returns higher TTL values for development/low-load
func ConservativeTTLStrategy() TTLStrategy {
	return TTLStrategy{
		NetworkList:   10 * time.Minute,
		NetworkDetail: 10 * time.Minute,
	}
}

// StrategyByName maps a configuration value to a TTL strategy.
// Unknown names get the default strategy.
func StrategyByName(name string) TTLStrategy {
	switch name {
	case "aggressive":
		return AggressiveTTLStrategy()
	case "conservative":
		return ConservativeTTLStrategy()
	default:
		return DefaultTTLStrategy()
	}
}

// RedisCache implements Store on top of Redis with namespaced keys
type RedisCache struct {
	client   *redis.Client
	strategy TTLStrategy
	prefix   string
}

// Config holds Redis cache configuration
type Config struct {
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
	Strategy     TTLStrategy
	KeyPrefix    string
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(ctx context.Context, cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client:   client,
		strategy: cfg.Strategy,
		prefix:   cfg.KeyPrefix,
	}, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Strategy returns the TTL strategy in use
func (c *RedisCache) Strategy() TTLStrategy {
	return c.strategy
}

func (c *RedisCache) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get retrieves a cached value into dest
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("key %s not in cache: %w", key, ErrCacheMiss)
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set caches a value with a specific TTL
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.key(key), data, ttl).Err()
}

// Delete removes keys from the cache
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.Del(ctx, full...).Err()
}

// BatchSet sets multiple cache entries with the same TTL in one pipeline
func (c *RedisCache) BatchSet(ctx context.Context, items map[string]any, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()

	for key, value := range items {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
		}
		pipe.Set(ctx, c.key(key), data, ttl)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Flush removes all keys with the configured prefix
func (c *RedisCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.key("*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Stats retrieves cache statistics
func (c *RedisCache) Stats(ctx context.Context) (map[string]any, error) {
	dbSize, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"backend": "redis",
		"db_size": dbSize,
		"strategy": map[string]string{
			"network_list":   c.strategy.NetworkList.String(),
			"network_detail": c.strategy.NetworkDetail.String(),
		},
	}, nil
}
