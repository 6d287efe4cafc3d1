package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/handler"
	"github.com/AdrianD28/whatsapp-marketing/internal/metrics"
)

func setupRouter(h *handler.Handler, cfg *config.Config, throttle func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", metrics.Handler())

	r.Mount("/", h.Routes(handler.RouteOptions{
		AdminKey: cfg.Admin.APIKey,
		Throttle: throttle,
	}))

	return r
}
