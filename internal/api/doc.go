// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

/*
Package api provides the HTTP layer for Bandstand.

This package wires the page engine, form handling, the AI chat stub,
and the operational endpoints into a single Chi router. It is the only
package that knows about routes; everything behind it (templates,
validation, flash messages, the submission bus) is a plain dependency
passed into Handlers.

Key Components:

  - Router: route table and middleware stack (Chi)
  - Handlers: request handlers for pages, forms, chat, and ops
  - ChiMiddleware: CORS and per-group rate limiting factories
  - Chat stream: optional WebSocket endpoint for the chat stub

Route Groups:

 1. Pages (GET): the twelve catalog pages, their legacy .html aliases,
    and the renamed /music-release and /music paths. Rendered HTML with
    a process-wide Content-Security-Policy.

 2. Forms (POST /contact, POST /newsletter): bind, validate, then either
    re-render with inline errors (200) or flash-and-redirect (303). The
    redirect-after-post pattern means a refresh never resubmits.

 3. JSON API (/api): GET /api/ai-agents, POST /api/ai-chat, and the
    optional GET /api/ai-chat/stream WebSocket. Responses are flat JSON
    shapes kept byte-compatible with the previous deployment, so the
    frontend chat script works unchanged.

 4. Ops: GET /test (legacy liveness probe with a fixed body),
    GET /healthz, GET /metrics (Prometheus).

Usage Example:

	engine, _ := pages.NewEngine()
	store, _ := flash.NewStore(secret)
	handlers := api.NewHandlers(engine, store, agents.NewRegistry(), bus, cfg)
	router := api.NewRouter(handlers, cfg)

	http.ListenAndServe(":5000", router.Setup())

Thread Safety:

All handlers are stateless or read-only over shared dependencies and
are safe for concurrent request handling. The flash store signs
per-client cookies; no server-side session state exists.

Security:

  - Restrictive CSP applied process-wide (mirrors the previous
    deployment's policy)
  - Per-IP rate limits: permissive for pages, strict for form posts
  - CORS restricted to configured origins on /api routes
  - All user input passes through validation or contextual escaping

See Also:

  - internal/pages: template engine and page catalog
  - internal/forms: form schemas and validation
  - internal/agents: chat personas and canned responses
  - internal/events: submission event bus
*/
package api
