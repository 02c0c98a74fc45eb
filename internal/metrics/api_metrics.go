package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics provides Prometheus metrics for API performance monitoring
type APIMetrics struct {
	// API request latency histogram with percentile buckets
	RequestDuration *prometheus.HistogramVec

	// API requests total counter
	RequestsTotal *prometheus.CounterVec

	// API request errors counter
	RequestErrors *prometheus.CounterVec

	// Active API requests gauge
	ActiveRequests *prometheus.GaugeVec

	// Requests rejected by the rate limiter
	RateLimited prometheus.Counter

	// Connected SSE and WebSocket clients
	StreamClients *prometheus.GaugeVec

	// System resource metrics
	GoroutineCount   prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge
	GCPauseDuration  *prometheus.HistogramVec
}

// NewAPIMetrics creates API and system metrics and registers them with reg.
// A nil reg uses the default registerer.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &APIMetrics{
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "api_request_duration_seconds",
				Help: "API request latency in seconds",
				Buckets: []float64{
					0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0,
				},
			},
			[]string{"method", "endpoint", "status"},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		RequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_request_errors_total",
				Help: "Total number of API request errors",
			},
			[]string{"method", "endpoint", "error_type"},
		),

		ActiveRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "api_requests_active",
				Help: "Number of currently active API requests",
			},
			[]string{"method", "endpoint"},
		),

		RateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "api_rate_limited_total",
				Help: "Requests rejected by the per-client rate limiter",
			},
		),

		StreamClients: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "api_stream_clients",
				Help: "Connected live stream clients by transport",
			},
			[]string{"transport"},
		),

		GoroutineCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "system_goroutines_count",
				Help: "Number of currently running goroutines",
			},
		),

		MemoryAllocBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "system_memory_alloc_bytes",
				Help: "Number of bytes allocated and still in use",
			},
		),

		MemorySysBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "system_memory_sys_bytes",
				Help: "Number of bytes obtained from system",
			},
		),

		GCPauseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "system_gc_pause_seconds",
				Help: "Garbage collection pause duration in seconds",
				Buckets: []float64{
					0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1,
				},
			},
			[]string{"type"},
		),
	}
}

// RecordAPIRequest records an API request with its duration and status
func (m *APIMetrics) RecordAPIRequest(method, endpoint, status string, duration float64) {
	m.RequestDuration.WithLabelValues(method, endpoint, status).Observe(duration)
	m.RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
}

// RecordAPIError records an API error
func (m *APIMetrics) RecordAPIError(method, endpoint, errorType string) {
	m.RequestErrors.WithLabelValues(method, endpoint, errorType).Inc()
}

// IncActiveRequests increments active request count
func (m *APIMetrics) IncActiveRequests(method, endpoint string) {
	m.ActiveRequests.WithLabelValues(method, endpoint).Inc()
}

// DecActiveRequests decrements active request count
func (m *APIMetrics) DecActiveRequests(method, endpoint string) {
	m.ActiveRequests.WithLabelValues(method, endpoint).Dec()
}

// RecordRateLimited counts a rejected request
func (m *APIMetrics) RecordRateLimited() {
	m.RateLimited.Inc()
}

// StreamConnected tracks a live stream client for its lifetime. Call the
// returned func on disconnect.
func (m *APIMetrics) StreamConnected(transport string) (disconnected func()) {
	g := m.StreamClients.WithLabelValues(transport)
	g.Inc()
	return g.Dec
}

// UpdateSystemMetrics updates system resource metrics
func (m *APIMetrics) UpdateSystemMetrics(goroutines int, memAlloc, memSys uint64) {
	m.GoroutineCount.Set(float64(goroutines))
	m.MemoryAllocBytes.Set(float64(memAlloc))
	m.MemorySysBytes.Set(float64(memSys))
}

// RecordGCPause records a garbage collection pause
func (m *APIMetrics) RecordGCPause(gcType string, duration float64) {
	m.GCPauseDuration.WithLabelValues(gcType).Observe(duration)
}
