package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AdrianD28/whatsapp-marketing/internal/middleware"
)

// RouteOptions configures Routes. Throttle, when set, wraps the tenant and
// admin groups only.
type RouteOptions struct {
	AdminKey string
	Throttle func(http.Handler) http.Handler
}

// Routes mounts every endpoint. Tenant routes require X-Tenant-ID; admin
// routes require the configured admin key. Health and provider webhooks are
// never throttled: the provider retries anything but a 200.
func (h *Handler) Routes(opts RouteOptions) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.HealthCheck)

	r.Route("/webhooks/whatsapp", func(r chi.Router) {
		r.Get("/", h.VerifyWebhook)
		r.Post("/", h.ReceiveWebhook)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if opts.Throttle != nil {
			r.Use(opts.Throttle)
		}
		r.Use(middleware.RequireTenant)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.CreateCampaign)
			r.Get("/", h.ListCampaigns)
			r.Route("/{campaignID}", func(r chi.Router) {
				r.Get("/", h.GetCampaign)
				r.Post("/pause", h.PauseCampaign)
				r.Post("/resume", h.ResumeCampaign)
				r.Post("/cancel", h.CancelCampaign)
			})
		})

		r.Get("/reports/campaigns", h.ListReports)
		r.Get("/reports/campaigns/{batchID}", h.GetReport)

		r.Get("/credits", h.GetCredits)
	})

	r.Route("/admin", func(r chi.Router) {
		if opts.Throttle != nil {
			r.Use(opts.Throttle)
		}
		r.Use(middleware.RequireAdminKey(opts.AdminKey))

		r.Post("/tenants/{tenantID}/credits", h.CreditTenant)
		r.Put("/tenants/{tenantID}/account", h.ConfigureAccount)
	})

	return r
}
