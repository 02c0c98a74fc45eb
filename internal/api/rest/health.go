package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/birddigital/avax-l1-explorer/internal/collector"
	"github.com/birddigital/avax-l1-explorer/internal/services/health"
)

// DetailsResponse is the body of GET /health/details
type DetailsResponse struct {
	health.Report
	Version   string                    `json:"version"`
	Collector *collector.CollectorStats `json:"collector,omitempty"`
	Cache     map[string]any            `json:"cache,omitempty"`
}

// Health handles GET /health. The first request runs the checks when the
// monitor has not completed a round yet. A draining process answers 503 so
// load balancers stop routing to it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.report(r.Context())
	writeJSON(w, statusCode(report), report)
}

// HealthDetails handles GET /health/details: the health report plus
// collector and cache counters
func (h *Handler) HealthDetails(w http.ResponseWriter, r *http.Request) {
	report := h.report(r.Context())
	body := DetailsResponse{Report: report, Version: h.version}

	if h.collector != nil {
		stats := h.collector.Stats()
		body.Collector = &stats
	}
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		stats, err := h.cache.Stats(ctx)
		if err != nil {
			logger := requestLogger(r)
			logger.Warn().Err(err).Msg("cache_stats_failed")
			stats = map[string]any{"error": err.Error()}
		}
		body.Cache = stats
	}
	writeJSON(w, statusCode(report), body)
}

// Liveness handles GET /health/live
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) report(ctx context.Context) health.Report {
	var report health.Report
	switch {
	case h.health == nil:
		report = health.Report{Status: health.StatusHealthy, CheckedAt: time.Now()}
	case !h.health.Checked():
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		report = h.health.Check(ctx)
	default:
		report = h.health.Report()
	}

	if h.lifecycle != nil && h.lifecycle.IsShuttingDown() {
		report.Status = health.StatusDraining
	}
	return report
}

func statusCode(report health.Report) int {
	switch report.Status {
	case health.StatusUnhealthy, health.StatusDraining:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}
