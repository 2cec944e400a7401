package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hostcfg/podnet/internal/integration"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(engine *integration.Engine, configPath string) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(Recovery)
	r.Use(Logger)
	r.Use(PrivateSubnetOnly) // Restrict access to private subnets
	r.Use(CORS)
	r.Use(JSONContentType)

	h := NewHandler(engine, configPath)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Per-network integration lifecycle
		r.Route("/networks/{name}", func(r chi.Router) {
			r.Get("/integration", h.GetIntegration)
			r.Post("/integration", h.CreateIntegration)
			r.Post("/integration/repair", h.RepairIntegration)
			r.Delete("/integration", h.DeleteIntegration)

			// DNS reachability probe
			r.Get("/dnscheck", h.CheckDNS)
		})

		// Pre-flight validation without touching the store
		r.Post("/integrations/validate", h.ValidateIntegration)

		// Reserved firewall zones for the zone selector
		r.Get("/zones", h.GetZones)

		// Settings endpoints
		r.Get("/settings", h.GetSettings)
		r.Patch("/settings", h.UpdateSettings)

		// Health check endpoint
		r.Get("/health", h.CheckHealth)
	})

	return r
}
