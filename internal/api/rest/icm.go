package rest

import (
	"net/http"

	"github.com/birddigital/avax-l1-explorer/internal/validation"
)

// ICMMessages handles GET /api/icm/messages?l1=&limit=
func (h *Handler) ICMMessages(w http.ResponseWriter, r *http.Request) {
	q, err := validation.ParseMessages(r.Context(), r.URL.Query())
	if err != nil {
		badRequest(w, err)
		return
	}

	// messages are labelled by network name, like routes and flows
	source := ""
	if q.L1 != "" {
		network, ok := h.lookup(w, r, q.L1, q.L1)
		if !ok {
			return
		}
		source = network.Name
	}

	messages, err := h.icm.Messages(r.Context(), source, q.Limit)
	if err != nil {
		failed(w, r, err, "Failed to fetch ICM messages")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"messages": messages,
		"total":    len(messages),
	})
}

// ICMRoutes handles GET /api/icm/routes
func (h *Handler) ICMRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.icm.Routes(r.Context())
	if err != nil {
		failed(w, r, err, "Failed to fetch ICM routes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"routes": routes,
		"total":  len(routes),
	})
}

// ICMAnalytics handles GET /api/icm/analytics
func (h *Handler) ICMAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.icm.Analytics(r.Context())
	if err != nil {
		failed(w, r, err, "Failed to compute ICM analytics")
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// ICMFlow handles GET /api/icm/flow
func (h *Handler) ICMFlow(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"flows": h.icm.MessageFlow(r.Context()),
	})
}

// ICMNetworkStats handles GET /api/icm/networks/{id}
func (h *Handler) ICMNetworkStats(w http.ResponseWriter, r *http.Request) {
	network, ok := h.network(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.icm.NetworkStats(r.Context(), network.ID))
}
