package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-conversions/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-conversions/internal/infra/http/middleware"
)

type routes struct {
	conversion *handlers.ConversionHandler
	importer   *handlers.ImportHandler
	health     *handlers.HealthHandler
}

func newRouter(rt routes, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", rt.health.Root)
	r.Get("/health", rt.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/import-leads", rt.importer.Handle)
	r.Post("/webhook", rt.conversion.Handle)

	return r
}
