package rest

import "github.com/go-chi/chi/v5"

// Mount registers every JSON endpoint on r
func (h *Handler) Mount(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/health/live", h.Liveness)
	r.Get("/health/details", h.HealthDetails)

	r.Route("/api", func(r chi.Router) {
		r.Route("/l1s", func(r chi.Router) {
			r.Get("/", h.ListNetworks)
			r.Get("/{id}", h.GetNetwork)
			r.Get("/{id}/performance", h.NetworkPerformance)
			r.Get("/{id}/icm-activity", h.NetworkICMActivity)
			r.Get("/{id}/validator-performance", h.NetworkValidatorPerformance)
		})

		r.Get("/performance", h.AllPerformance)

		r.Route("/icm", func(r chi.Router) {
			r.Get("/messages", h.ICMMessages)
			r.Get("/routes", h.ICMRoutes)
			r.Get("/analytics", h.ICMAnalytics)
			r.Get("/flow", h.ICMFlow)
			r.Get("/networks/{id}", h.ICMNetworkStats)
		})

		r.Route("/validators", func(r chi.Router) {
			r.Get("/", h.Validators)
			r.Get("/rankings", h.Rankings)
			r.Get("/opportunities", h.Opportunities)
			r.Get("/delegation", h.Delegation)
			r.Get("/analytics", h.StakingAnalytics)
			r.Get("/{nodeID}", h.ValidatorProfile)
		})
	})
}
