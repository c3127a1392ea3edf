// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// router.go - Route Table

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/bandstand/internal/config"
	"github.com/tomtom215/bandstand/internal/middleware"
	"github.com/tomtom215/bandstand/internal/pages"
)

// Router assembles the Chi route table from the handler set.
type Router struct {
	handlers      *Handlers
	chiMiddleware *ChiMiddleware
	config        *config.Config
}

// NewRouter creates a router over the given handlers.
func NewRouter(handlers *Handlers, cfg *config.Config) *Router {
	var secCfg *config.SecurityConfig
	if cfg != nil {
		secCfg = &cfg.Security
	}
	return &Router{
		handlers:      handlers,
		chiMiddleware: NewChiMiddlewareFromConfig(secCfg),
		config:        cfg,
	}
}

// Setup configures all HTTP routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recoverer(router.handlers.ServerError))
	r.Use(middleware.SecurityHeaders)

	// ========================
	// Pages
	// ========================
	// Every catalog page under its canonical route plus the legacy
	// aliases, so old deep links keep resolving.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitPages())
		r.Use(middleware.PrometheusMetrics)

		for _, page := range pages.Catalog() {
			handler := router.handlers.Page(page)
			r.Get(page.Route, handler)
			for _, alias := range page.LegacyAliases {
				r.Get(alias, handler)
			}
		}
	})

	// ========================
	// Form Submissions
	// ========================
	// Strict per-IP limit: humans do not post forms ten times a minute.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitForms())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/contact", router.handlers.ContactSubmit)
		r.Post("/newsletter", router.handlers.NewsletterSubmit)
	})

	// ========================
	// JSON API
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.CORS())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAPI())
			r.Get("/ai-agents", router.handlers.AIAgents)
			r.Post("/ai-chat", router.handlers.AIChat)
		})

		if router.streamEnabled() {
			r.With(router.chiMiddleware.RateLimitStream()).
				Get("/ai-chat/stream", router.handlers.ChatStream)
		}

		// Unknown /api paths answer JSON, never the HTML 404 page.
		r.NotFound(apiNotFound)
	})

	// ========================
	// Ops
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitOps())

		r.Get("/test", router.handlers.Test)
		r.Get("/healthz", router.handlers.Healthz)
		if router.metricsEnabled() {
			r.Handle("/metrics", promhttp.Handler())
		}
	})

	// ========================
	// Static Files
	// ========================
	if dir := router.staticDir(); dir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitPages())
			r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Cache-Control", "public, max-age=3600")
				fs.ServeHTTP(w, req)
			})
		})
	}

	// ========================
	// Not Found
	// ========================
	r.NotFound(router.handlers.NotFound)

	return r
}

func (router *Router) streamEnabled() bool {
	return router.config != nil && router.config.Chat.StreamEnabled
}

func (router *Router) metricsEnabled() bool {
	return router.config != nil && router.config.Metrics.Enabled
}

func (router *Router) staticDir() string {
	if router.config == nil {
		return ""
	}
	return router.config.Server.StaticDir
}
