// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// handlers.go - Page Handlers
//
// Handlers owns every dependency the HTTP layer needs. It is built
// once in main and passed to NewRouter; no handler touches a global.

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/bandstand/internal/agents"
	"github.com/tomtom215/bandstand/internal/config"
	"github.com/tomtom215/bandstand/internal/events"
	"github.com/tomtom215/bandstand/internal/flash"
	"github.com/tomtom215/bandstand/internal/forms"
	"github.com/tomtom215/bandstand/internal/logging"
	"github.com/tomtom215/bandstand/internal/pages"
)

// SubmissionPublisher publishes form submission events. The submission
// bus satisfies it; tests substitute a recording fake.
type SubmissionPublisher interface {
	Publish(ctx context.Context, event events.SubmissionEvent) error
}

// Handlers carries the dependencies shared by all request handlers.
type Handlers struct {
	engine  *pages.Engine
	flashes *flash.Store
	agents  *agents.Registry
	bus     SubmissionPublisher
	config  *config.Config
}

// NewHandlers creates the handler set. The bus may be nil, in which
// case accepted submissions are only logged.
func NewHandlers(engine *pages.Engine, flashes *flash.Store, registry *agents.Registry, bus SubmissionPublisher, cfg *config.Config) *Handlers {
	return &Handlers{
		engine:  engine,
		flashes: flashes,
		agents:  registry,
		bus:     bus,
		config:  cfg,
	}
}

// Page returns the GET handler for a catalog page. The same handler
// serves the canonical route and every legacy alias.
func (h *Handlers) Page(page pages.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := h.viewData(w, r, page)
		if err := h.engine.Render(w, http.StatusOK, page.TemplateName, data); err != nil {
			logging.CtxErr(r.Context(), err).
				Str("template", page.TemplateName).
				Msg("Failed to render page")
			h.engine.RenderServerError(w, pages.ViewData{})
		}
	}
}

// viewData assembles the ViewData for a page render: title from the
// descriptor, pending flash popped from the cookie, and the page's
// extra payload (empty form structs, the agent roster).
func (h *Handlers) viewData(w http.ResponseWriter, r *http.Request, page pages.Page) pages.ViewData {
	data := pages.ViewData{Title: page.Title}

	if msg, ok := h.flashes.Pop(w, r); ok {
		data.Flash = &msg
	}

	switch page.TemplateName {
	case pages.TemplateContact:
		data.Form = &forms.ContactForm{}
	case pages.TemplateNewsletter:
		data.Form = &forms.NewsletterForm{}
	case pages.TemplateAIChat:
		data.Agents = h.agents.List()
	}
	return data
}

// NotFound renders the 404 page for unknown non-API routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	logging.CtxDebug(r.Context()).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Msg("Page not found")
	h.engine.RenderNotFound(w, pages.ViewData{})
}

// ServerError renders the 500 page. The recoverer middleware calls it
// after logging the panic.
func (h *Handlers) ServerError(w http.ResponseWriter, r *http.Request) {
	h.engine.RenderServerError(w, pages.ViewData{})
}
