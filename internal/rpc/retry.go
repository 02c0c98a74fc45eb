package rpc

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig configures the retry behavior
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
}

// DefaultRetryConfig returns sensible defaults for node calls
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		BackoffFactor:  2.0,
	}
}

// RetryingCaller retries transport failures with exponential backoff.
// Protocol errors are returned immediately.
type RetryingCaller struct {
	next   Caller
	config RetryConfig
}

// WithRetry wraps next with retries. A config with MaxRetries <= 0 returns
// next unchanged.
func WithRetry(next Caller, config RetryConfig) Caller {
	if config.MaxRetries <= 0 {
		return next
	}
	return &RetryingCaller{next: next, config: config}
}

// Call implements Caller
func (r *RetryingCaller) Call(ctx context.Context, endpoint, method string, params, result any) error {
	var lastErr error
	backoff := r.config.InitialBackoff

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err := r.next.Call(ctx, endpoint, method, params, result)
		if err == nil {
			return nil
		}
		if !IsTransport(err) {
			return err
		}
		lastErr = err

		// Don't sleep after last attempt
		if attempt < r.config.MaxRetries {
			select {
			case <-ctx.Done():
				return fmt.Errorf("call cancelled during retry: %w", ctx.Err())
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * r.config.BackoffFactor)
				if backoff > r.config.MaxBackoff {
					backoff = r.config.MaxBackoff
				}
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
