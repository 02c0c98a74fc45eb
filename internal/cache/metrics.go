package cache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avax_cache_hits_total",
			Help: "Cache hits by backend and key kind",
		},
		[]string{"backend", "kind"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avax_cache_misses_total",
			Help: "Cache misses by backend and key kind",
		},
		[]string{"backend", "kind"},
	)

	cacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avax_cache_errors_total",
			Help: "Cache operation errors by backend and operation",
		},
		[]string{"backend", "operation"},
	)

	cacheLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "avax_cache_operation_duration_seconds",
			Help:    "Cache operation latency",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"backend", "operation"},
	)
)

// instrumented records Prometheus metrics around a Store
type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so that every operation is counted under backend
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	cacheLatency.WithLabelValues(i.backend, op).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		cacheErrors.WithLabelValues(i.backend, op).Inc()
	}
}

func (i *instrumented) Get(ctx context.Context, key string, dest any) error {
	start := time.Now()
	err := i.Store.Get(ctx, key, dest)
	i.observe("get", start, err)

	switch {
	case err == nil:
		cacheHits.WithLabelValues(i.backend, kind(key)).Inc()
	case errors.Is(err, ErrCacheMiss):
		cacheMisses.WithLabelValues(i.backend, kind(key)).Inc()
	}
	return err
}

func (i *instrumented) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	start := time.Now()
	err := i.Store.Set(ctx, key, value, ttl)
	i.observe("set", start, err)
	return err
}

func (i *instrumented) BatchSet(ctx context.Context, items map[string]any, ttl time.Duration) error {
	start := time.Now()
	err := i.Store.BatchSet(ctx, items, ttl)
	i.observe("batch_set", start, err)
	return err
}

func (i *instrumented) Delete(ctx context.Context, keys ...string) error {
	start := time.Now()
	err := i.Store.Delete(ctx, keys...)
	i.observe("delete", start, err)
	return err
}

func (i *instrumented) Flush(ctx context.Context) error {
	start := time.Now()
	err := i.Store.Flush(ctx)
	i.observe("flush", start, err)
	return err
}
