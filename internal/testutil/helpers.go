package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/synth"
)

// TestRedisClient creates a Redis client for integration tests.
// The test is skipped when Redis is unreachable.
func TestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: GetTestRedisAddr(),
		DB:   1, // Use test database
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not available at %s: %v", GetTestRedisAddr(), err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

// GetTestRedisAddr returns the test Redis address
func GetTestRedisAddr() string {
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// FixedTime returns a fixed time for testing
func FixedTime() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

// Source returns a deterministic synth source pinned to FixedTime
func Source(seed int64) synth.Source {
	return synth.NewSource(seed, synth.FixedClock(FixedTime()))
}

// Logger returns a no-op logger for components under test
func Logger() zerolog.Logger {
	return zerolog.Nop()
}

// WaitForCondition waits for a condition to be true with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("Timeout waiting for condition: %s", message)
}
