package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/birddigital/avax-l1-explorer/internal/registry"
	"github.com/birddigital/avax-l1-explorer/internal/validation"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// RootResponse describes the API
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// ListResponse is the body of GET /api/l1s
type ListResponse struct {
	L1s         []types.Network `json:"l1s"`
	Total       int             `json:"total"`
	Origin      string          `json:"origin"`
	LastUpdated string          `json:"lastUpdated"`
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "Bulletin AVAX API is running",
		Version: h.version,
		Endpoints: map[string]string{
			"l1s":         "/api/l1s",
			"health":      "/health",
			"performance": "/api/performance",
			"icm":         "/api/icm/analytics",
			"validators":  "/api/validators",
			"stream":      "/api/stream",
			"ws":          "/api/ws",
		},
	})
}

// ListNetworks handles GET /api/l1s
func (h *Handler) ListNetworks(w http.ResponseWriter, r *http.Request) {
	listing, err := h.networks.Listing(r.Context())
	if err != nil {
		failed(w, r, err, "Failed to fetch L1 data")
		return
	}

	networks := listing.Networks
	if networks == nil {
		networks = []types.Network{}
	}
	writeJSON(w, http.StatusOK, ListResponse{
		L1s:         networks,
		Total:       len(networks),
		Origin:      string(listing.Origin),
		LastUpdated: listing.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// GetNetwork handles GET /api/l1s/{id}
func (h *Handler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	network, ok := h.network(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, network)
}

// network resolves the {id} path parameter, answering 404 or 500 itself
// when it cannot
func (h *Handler) network(w http.ResponseWriter, r *http.Request) (types.Network, bool) {
	return h.lookup(w, r, chi.URLParam(r, "id"), "")
}

// lookup resolves a network ID taken from the request. Synthesizers cache
// per ID, so only listed networks may reach them.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, id, detail string) (types.Network, bool) {
	network, err := h.networks.Network(r.Context(), id)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		writeError(w, http.StatusNotFound, "L1 not found", detail)
		return types.Network{}, false
	case err != nil:
		failed(w, r, err, "Failed to fetch L1 data")
		return types.Network{}, false
	}
	return network, true
}

// NetworkPerformance handles GET /api/l1s/{id}/performance
func (h *Handler) NetworkPerformance(w http.ResponseWriter, r *http.Request) {
	network, ok := h.network(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.performance.GetPerformance(r.Context(), network.ID))
}

// NetworkICMActivity handles GET /api/l1s/{id}/icm-activity
func (h *Handler) NetworkICMActivity(w http.ResponseWriter, r *http.Request) {
	network, ok := h.network(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.performance.ICMActivity(r.Context(), network.ID))
}

// NetworkValidatorPerformance handles GET /api/l1s/{id}/validator-performance
func (h *Handler) NetworkValidatorPerformance(w http.ResponseWriter, r *http.Request) {
	network, ok := h.network(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.performance.ValidatorPerformance(r.Context(), network.ID))
}

// AllPerformance handles GET /api/performance?ids=a,b. Without ids it
// covers every listed network; any unlisted id fails the whole request.
func (h *Handler) AllPerformance(w http.ResponseWriter, r *http.Request) {
	ids := h.networks.IDs()
	if r.URL.Query().Has("ids") {
		q, err := validation.ParsePerformance(r.Context(), r.URL.Query())
		if err != nil {
			badRequest(w, err)
			return
		}
		if !h.listed(w, r, q.IDs) {
			return
		}
		ids = q.IDs
	}

	performance := h.performance.GetAllPerformance(r.Context(), ids)
	writeJSON(w, http.StatusOK, map[string]any{
		"networks": performance,
		"total":    len(performance),
	})
}

// listed checks ids against the current listing, answering 404 with the
// unknown ids when any is missing
func (h *Handler) listed(w http.ResponseWriter, r *http.Request, ids []string) bool {
	listing, err := h.networks.Listing(r.Context())
	if err != nil {
		failed(w, r, err, "Failed to fetch L1 data")
		return false
	}

	known := make(map[string]struct{}, len(listing.Networks))
	for _, n := range listing.Networks {
		known[n.ID] = struct{}{}
	}
	var unknown []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		writeError(w, http.StatusNotFound, "L1 not found", strings.Join(unknown, ","))
		return false
	}
	return true
}
