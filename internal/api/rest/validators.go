package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/birddigital/avax-l1-explorer/internal/staking"
	"github.com/birddigital/avax-l1-explorer/internal/validation"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// Validators handles GET /api/validators?l1=. An empty l1 selects the
// ecosystem-wide population.
func (h *Handler) Validators(w http.ResponseWriter, r *http.Request) {
	l1 := strings.TrimSpace(r.URL.Query().Get("l1"))
	if l1 != "" {
		network, ok := h.lookup(w, r, l1, l1)
		if !ok {
			return
		}
		l1 = network.ID
	}

	validators, err := h.staking.ValidatorMetrics(r.Context(), l1)
	if err != nil {
		failed(w, r, err, "Failed to fetch validator metrics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"validators": validators,
		"total":      len(validators),
	})
}

// Rankings handles GET /api/validators/rankings?sortBy=
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	q, err := validation.ParseRankings(r.Context(), r.URL.Query())
	if err != nil {
		badRequest(w, err)
		return
	}

	rankings, err := h.staking.Rankings(r.Context(), types.RankingMetric(q.SortBy))
	if err != nil {
		failed(w, r, err, "Failed to rank validators")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rankings": rankings,
		"sortBy":   q.SortBy,
		"total":    len(rankings),
	})
}

// Opportunities handles GET /api/validators/opportunities?amount=&risk=
func (h *Handler) Opportunities(w http.ResponseWriter, r *http.Request) {
	q, err := validation.ParseOpportunities(r.Context(), r.URL.Query())
	if err != nil {
		badRequest(w, err)
		return
	}

	opportunities, err := h.staking.Opportunities(r.Context(), q.Amount, types.RiskLevel(q.Risk))
	if err != nil {
		failed(w, r, err, "Failed to find staking opportunities")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"opportunities": opportunities,
		"amount":        q.Amount,
		"riskTolerance": q.Risk,
		"total":         len(opportunities),
	})
}

// Delegation handles GET /api/validators/delegation?amount=&strategy=
func (h *Handler) Delegation(w http.ResponseWriter, r *http.Request) {
	q, err := validation.ParseDelegation(r.Context(), r.URL.Query())
	if err != nil {
		badRequest(w, err)
		return
	}

	rec, err := h.staking.Delegation(r.Context(), q.Amount, types.DelegationStrategy(q.Strategy))
	if err != nil {
		failed(w, r, err, "Failed to build delegation recommendation")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// StakingAnalytics handles GET /api/validators/analytics
func (h *Handler) StakingAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.staking.Analytics(r.Context())
	if err != nil {
		failed(w, r, err, "Failed to compute staking analytics")
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// ValidatorProfile handles GET /api/validators/{nodeID}
func (h *Handler) ValidatorProfile(w http.ResponseWriter, r *http.Request) {
	q, err := validation.ParseProfile(r.Context(), chi.URLParam(r, "nodeID"))
	if err != nil {
		badRequest(w, err)
		return
	}

	validator, err := h.staking.Profile(r.Context(), q.NodeID)
	switch {
	case errors.Is(err, staking.ErrValidatorNotFound):
		writeError(w, http.StatusNotFound, "Validator not found", q.NodeID)
		return
	case err != nil:
		failed(w, r, err, "Failed to fetch validator")
		return
	}
	writeJSON(w, http.StatusOK, validator)
}
