// Package metrics defines the Prometheus metrics of the explorer and the
// standalone server that exposes them.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const systemMetricsInterval = 15 * time.Second

// Server provides an HTTP server for exposing Prometheus metrics
type Server struct {
	port       int
	server     *http.Server
	apiMetrics *APIMetrics
	logger     zerolog.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMetricsServer creates a new metrics server. A nil gatherer serves the
// default registry; apiMetrics may be nil to skip system metrics.
func NewMetricsServer(port int, apiMetrics *APIMetrics, gatherer prometheus.Gatherer, logger zerolog.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &Server{
		port: port,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		apiMetrics: apiMetrics,
		logger:     logger,
		stop:       make(chan struct{}),
	}
}

// Handler returns the metrics HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves metrics on the configured port until Shutdown
func (s *Server) Start() error {
	go s.updateSystemMetrics()

	s.logger.Info().Int("port", s.port).Msg("metrics_server_started")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the metrics server
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	return s.server.Shutdown(ctx)
}

// updateSystemMetrics periodically collects and updates system metrics
func (s *Server) updateSystemMetrics() {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.collectSystemMetrics()
		}
	}
}

// collectSystemMetrics gathers current system resource metrics
func (s *Server) collectSystemMetrics() {
	if s.apiMetrics == nil {
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.apiMetrics.UpdateSystemMetrics(runtime.NumGoroutine(), m.Alloc, m.Sys)

	// Record GC pause if there was one
	if pause := m.PauseNs[(m.NumGC+255)%256]; pause > 0 {
		s.apiMetrics.RecordGCPause("stop-the-world", float64(pause)/1e9)
	}
}
