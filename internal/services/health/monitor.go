// Package health runs periodic component checks and publishes the
// aggregated status to live stream clients.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/web/sse"
)

var (
	healthCheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "health_check_duration_seconds",
			Help:    "Duration of health checks by component",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"component"},
	)

	healthCheckStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "health_check_status",
			Help: "Current health status by component (1 = healthy, 0 = unhealthy)",
		},
		[]string{"component"},
	)

	healthCheckErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_check_errors_total",
			Help: "Total number of health check errors by component",
		},
		[]string{"component"},
	)
)

// Status values reported per component and overall
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusUnknown   = "unknown"

	// StatusDraining is reported overall once the process is shutting down
	StatusDraining = "draining"
)

// Pinger is anything that can prove it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx)
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Component is a named dependency under watch. A failing critical component
// makes the whole service unhealthy; any other failure only degrades it.
type Component struct {
	Name     string
	Pinger   Pinger
	Critical bool
}

// ComponentStatus represents the health status of a system component
type ComponentStatus struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	LastCheck time.Time `json:"lastCheck"`
	Latency   float64   `json:"latencyMs"`
}

// Report is the aggregated view served on /health
type Report struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components"`
	CheckedAt  time.Time                  `json:"checkedAt"`
}

// Broadcaster delivers events to stream clients
type Broadcaster interface {
	Broadcast(event sse.Event)
}

// MonitorConfig holds configuration for the health monitor
type MonitorConfig struct {
	CheckInterval time.Duration
	CheckTimeout  time.Duration
}

// DefaultMonitorConfig returns default monitor configuration
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		CheckInterval: 30 * time.Second,
		CheckTimeout:  10 * time.Second,
	}
}

// Monitor performs periodic health checks and broadcasts status changes
type Monitor struct {
	components  []Component
	broadcaster Broadcaster
	config      MonitorConfig
	logger      zerolog.Logger

	mu        sync.RWMutex
	status    map[string]ComponentStatus
	checkedAt time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor creates a new health monitor. broadcaster may be nil.
func NewMonitor(components []Component, broadcaster Broadcaster, config MonitorConfig, logger zerolog.Logger) *Monitor {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultMonitorConfig().CheckInterval
	}
	if config.CheckTimeout <= 0 {
		config.CheckTimeout = DefaultMonitorConfig().CheckTimeout
	}
	return &Monitor{
		components:  components,
		broadcaster: broadcaster,
		config:      config,
		logger:      logger,
		status:      make(map[string]ComponentStatus, len(components)),
	}
}

// Start runs a first check immediately and then one every interval until
// ctx is cancelled or Stop is called
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go m.monitorLoop(ctx)
}

// Stop gracefully stops the health monitor
func (m *Monitor) Stop() error {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	return nil
}

func (m *Monitor) monitorLoop(ctx context.Context) {
	defer m.wg.Done()

	m.Check(ctx)

	ticker := time.NewTicker(m.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs every component check in parallel, stores the results and
// broadcasts a health-status event when any component changed state
func (m *Monitor) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, m.config.CheckTimeout)
	defer cancel()

	results := make([]ComponentStatus, len(m.components))
	var wg sync.WaitGroup
	for i, c := range m.components {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = m.checkComponent(ctx, c)
		}()
	}
	wg.Wait()

	changed := false
	m.mu.Lock()
	for _, r := range results {
		if old, ok := m.status[r.Name]; !ok || old.Status != r.Status {
			changed = true
		}
		m.status[r.Name] = r
	}
	m.checkedAt = time.Now()
	m.mu.Unlock()

	report := m.Report()
	if changed {
		m.logger.Info().Str("status", report.Status).Msg("health_status_changed")
		m.broadcastHealthStatus(report)
	}
	return report
}

func (m *Monitor) checkComponent(ctx context.Context, c Component) ComponentStatus {
	timer := prometheus.NewTimer(healthCheckDuration.WithLabelValues(c.Name))
	defer timer.ObserveDuration()

	start := time.Now()
	status := ComponentStatus{
		Name:      c.Name,
		Status:    StatusHealthy,
		LastCheck: start,
	}

	var err error
	if c.Pinger == nil {
		err = fmt.Errorf("%s not initialized", c.Name)
	} else {
		err = c.Pinger.Ping(ctx)
	}
	status.Latency = float64(time.Since(start).Microseconds()) / 1000

	if err != nil {
		status.Status = StatusUnhealthy
		status.Message = fmt.Sprintf("%s ping failed: %v", c.Name, err)
		healthCheckStatus.WithLabelValues(c.Name).Set(0)
		healthCheckErrors.WithLabelValues(c.Name).Inc()
		m.logger.Warn().Err(err).Str("check", c.Name).Msg("health_check_failed")
		return status
	}

	healthCheckStatus.WithLabelValues(c.Name).Set(1)
	return status
}

// Report returns the latest results. Components not checked yet are
// reported as unknown.
func (m *Monitor) Report() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report := Report{
		Status:     StatusHealthy,
		Components: make(map[string]ComponentStatus, len(m.components)),
		CheckedAt:  m.checkedAt,
	}
	for _, c := range m.components {
		s, ok := m.status[c.Name]
		if !ok {
			s = ComponentStatus{Name: c.Name, Status: StatusUnknown}
		}
		report.Components[c.Name] = s

		switch {
		case s.Status == StatusHealthy:
		case c.Critical:
			report.Status = StatusUnhealthy
		case report.Status == StatusHealthy:
			report.Status = StatusDegraded
		}
	}
	return report
}

// Checked reports whether at least one check round has completed
func (m *Monitor) Checked() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.checkedAt.IsZero()
}

func (m *Monitor) broadcastHealthStatus(report Report) {
	if m.broadcaster == nil {
		return
	}

	components := make(map[string]string, len(report.Components))
	for name, s := range report.Components {
		components[name] = s.Status
	}

	m.broadcaster.Broadcast(sse.Event{
		Type: sse.EventTypeHealthStatus,
		Data: &sse.HealthStatusData{
			Status:     report.Status,
			Components: components,
			CheckedAt:  report.CheckedAt.Unix(),
		},
		ID: fmt.Sprintf("health-%d", report.CheckedAt.UnixNano()),
	})
}
