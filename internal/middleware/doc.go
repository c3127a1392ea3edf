// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

/*
Package middleware carries the infrastructure middleware shared by every
route: Prometheus instrumentation, security headers, and panic recovery.
The request-ID and rate-limiting middleware live in the api package
alongside the chi router they configure.

Key Components:

  - PrometheusMetrics: HTTP request/response instrumentation
  - SecurityHeaders: Process-wide Content Security Policy and friends
  - Recoverer: Panic recovery that renders the 500 page

Middleware Stack:

The global stack applied to every route is:

	r.Use(api.RequestIDWithLogging()) // Request tracking
	r.Use(chimiddleware.RealIP)       // Client IP behind proxies
	r.Use(middleware.Recoverer(h.ServerError)) // Panic recovery
	r.Use(middleware.SecurityHeaders) // CSP and security headers

PrometheusMetrics is applied per route group so the ops endpoints
(/metrics, /healthz) do not instrument themselves.

Usage Example - Metrics:

	r.Group(func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Post("/contact", h.ContactSubmit)
	})

The endpoint label is the chi route pattern, so /pages/{slug} produces one
label value regardless of how many slugs are requested.

Security Headers:

SecurityHeaders sets the same policy on every response:

  - Content-Security-Policy: same-origin with Google Fonts and HTTPS images
  - X-Frame-Options: DENY
  - X-Content-Type-Options: nosniff
  - Referrer-Policy: strict-origin-when-cross-origin
  - Strict-Transport-Security: only when the request arrived over HTTPS

Recoverer:

Recoverer takes the 500-page renderer as an argument so this package does
not depend on the template engine. Requests under /api/ receive a flat
JSON error body instead of HTML. http.ErrAbortHandler is re-panicked so
the server's own abort handling still works.

Thread Safety:

Every middleware here is safe under concurrent requests:

  - PrometheusMetrics uses atomic metric operations
  - SecurityHeaders writes only per-request state
  - Recoverer keeps no state between requests

See Also:

  - internal/api: chi router, request-ID and rate-limit middleware
  - internal/metrics: the Prometheus collector definitions
  - internal/pages: the 500 page renderer passed to Recoverer
*/
package middleware
