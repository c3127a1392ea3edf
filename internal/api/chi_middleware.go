// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// chi_middleware.go - Chi Middleware Factories
//
// CORS, rate limiting, and request-ID middleware built on the Chi
// ecosystem (go-chi/cors, go-chi/httprate) instead of hand-rolled
// implementations.

package api

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/bandstand/internal/config"
	"github.com/tomtom215/bandstand/internal/logging"
	"github.com/tomtom215/bandstand/internal/metrics"
)

// requestIDHeader carries the caller-supplied correlation ID, typically
// injected by a reverse proxy.
const requestIDHeader = "X-Request-ID"

// RateLimitConfig defines rate limit parameters for a route group.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Per-group rate limit budgets. Pages are permissive (a single page
// load fetches HTML plus assets), the JSON API is moderate, and form
// posts are strict because no human submits a form ten times a minute.
var (
	RateLimitPages  = RateLimitConfig{Requests: 300, Window: time.Minute}
	RateLimitAPI    = RateLimitConfig{Requests: 60, Window: time.Minute}
	RateLimitForm   = RateLimitConfig{Requests: 10, Window: time.Minute}
	RateLimitStream = RateLimitConfig{Requests: 10, Window: time.Minute}
	RateLimitOps    = RateLimitConfig{Requests: 1000, Window: time.Minute}
)

// ChiMiddlewareConfig holds configuration for the middleware factories.
// CORS applies to the /api group only; the two limits cover the JSON
// API and form submissions, which carry their own operator knobs.
type ChiMiddlewareConfig struct {
	CORS cors.Options

	APILimit          RateLimitConfig
	FormLimit         RateLimitConfig
	RateLimitDisabled bool
}

// DefaultChiMiddlewareConfig returns a secure default configuration.
// CORS origins default to empty, requiring explicit configuration.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORS: cors.Options{
			AllowedOrigins: []string{},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         86400,
		},
		APILimit:  RateLimitAPI,
		FormLimit: RateLimitForm,
	}
}

// NewChiMiddlewareFromConfig builds the middleware factory from the
// loaded security configuration, falling back to defaults for zero
// values.
func NewChiMiddlewareFromConfig(cfg *config.SecurityConfig) *ChiMiddleware {
	mwc := DefaultChiMiddlewareConfig()
	if cfg != nil {
		mwc.CORS.AllowedOrigins = cfg.CORSOrigins
		mwc.RateLimitDisabled = cfg.RateLimitDisabled
		applyLimit(&mwc.APILimit, cfg.RateLimitRequests, cfg.RateLimitWindow)
		applyLimit(&mwc.FormLimit, cfg.FormRateLimitRequests, cfg.FormRateLimitWindow)
	}
	return NewChiMiddleware(mwc)
}

// applyLimit overrides a default budget with any configured values.
func applyLimit(dst *RateLimitConfig, requests int, window time.Duration) {
	if requests > 0 {
		dst.Requests = requests
	}
	if window > 0 {
		dst.Window = window
	}
}

// ChiMiddleware provides Chi-compatible middleware factories.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a middleware factory with the given
// configuration.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
	}
	return &ChiMiddleware{config: cfg, cors: cors.Handler(cfg.CORS)}
}

// CORS returns the CORS middleware for the /api group.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// passthrough is the no-op middleware used when rate limiting is off.
func passthrough(next http.Handler) http.Handler { return next }

// RateLimitCustom returns an IP-keyed rate limiter for the given
// budget, recording limit hits under the endpoint label.
func (m *ChiMiddleware) RateLimitCustom(endpoint string, cfg RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return passthrough
	}

	limitHit := func(w http.ResponseWriter, r *http.Request) {
		metrics.RecordRateLimitHit(endpoint)
		logging.Warn().
			Str("endpoint", endpoint).
			Str("remote_addr", r.RemoteAddr).
			Msg("Rate limit exceeded")
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
	}

	return httprate.Limit(cfg.Requests, cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(limitHit),
	)
}

// RateLimitPages returns the permissive limiter for page routes.
func (m *ChiMiddleware) RateLimitPages() func(http.Handler) http.Handler {
	return m.RateLimitCustom("pages", RateLimitPages)
}

// RateLimitAPI returns the limiter for the JSON API group.
func (m *ChiMiddleware) RateLimitAPI() func(http.Handler) http.Handler {
	return m.RateLimitCustom("api", m.config.APILimit)
}

// RateLimitForms returns the strict limiter for form submissions.
func (m *ChiMiddleware) RateLimitForms() func(http.Handler) http.Handler {
	return m.RateLimitCustom("forms", m.config.FormLimit)
}

// RateLimitStream returns the limiter for WebSocket upgrades. This
// bounds the upgrade rate; per-message limits live on the connection.
func (m *ChiMiddleware) RateLimitStream() func(http.Handler) http.Handler {
	return m.RateLimitCustom("stream", RateLimitStream)
}

// RateLimitOps returns the permissive limiter for liveness and metrics
// endpoints, which monitoring tools poll frequently.
func (m *ChiMiddleware) RateLimitOps() func(http.Handler) http.Handler {
	return m.RateLimitCustom("ops", RateLimitOps)
}

// RequestIDWithLogging assigns every request an ID and threads it
// through both Chi's context key (read back via chimiddleware.GetReqID,
// also by the submission bus) and the logging context, together with a
// fresh correlation ID. An inbound X-Request-ID wins over a generated
// one so proxy-assigned IDs survive into the logs.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = logging.GenerateRequestID()
			}

			ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)
			ctx = logging.ContextWithRequestID(ctx, id)
			ctx = logging.ContextWithNewCorrelationID(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// APISecurityHeaders hardens JSON API responses. Content-Security-Policy
// is not added here; the page CSP middleware owns it and is written for
// HTML. HSTS is added only when the request arrived over HTTPS or a
// TLS-terminating proxy.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
