// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package pages renders the server-side HTML for the band website.
//
// pages.go - Page Rendering Engine
//
// This file implements the template rendering engine for the site:
//   - Go html/template rendering with a shared base layout
//   - Built-in template functions for titles, truncation, and form errors
//   - Buffered execution so template faults never leak partial pages
//   - Dedicated templates for the 404 and 500 error pages
//
// Security:
//   - All visitor-originated strings pass through html/template's
//     contextual escaping
//   - Templates are compiled once at startup; there is no runtime
//     template loading
package pages

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/bandstand/internal/agents"
	"github.com/tomtom215/bandstand/internal/flash"
	"github.com/tomtom215/bandstand/internal/logging"
	"github.com/tomtom215/bandstand/internal/metrics"
)

// Template names accepted by Render. Every Catalog entry references one
// of these; the error templates are reserved for the dedicated renderers.
const (
	TemplateHome          = "home"
	TemplateAbout         = "about"
	TemplateMusicRelease  = "music_release"
	TemplateMusicArchive  = "music_archive"
	TemplateTour          = "tour"
	TemplateEngage        = "engage"
	TemplateNewsletter    = "newsletter"
	TemplateBlog          = "blog"
	TemplateCollaboration = "collaboration"
	TemplateContact       = "contact"
	TemplateAccessibility = "accessibility"
	TemplateAIChat        = "ai_chat"
	TemplateNotFound      = "not_found"
	TemplateServerError   = "server_error"
)

// Page describes one routable page of the site.
type Page struct {
	// Route is the canonical path the page is served at.
	Route string

	// TemplateName selects the body template rendered for the page.
	TemplateName string

	// Title is the human-readable page title.
	Title string

	// LegacyAliases are additional paths served by the same handler:
	// the original site's *.html filenames plus renamed routes kept
	// alive for old bookmarks.
	LegacyAliases []string
}

// ViewData is the single data shape every template receives. Fields that
// do not apply to a page are left zero; the templates guard accordingly.
type ViewData struct {
	// Title becomes the document title.
	Title string

	// Flash is a one-shot notification popped from the flash cookie,
	// nil when there is none.
	Flash *flash.Message

	// Form carries the bound form for re-rendering after a rejected
	// submission. Contact and newsletter templates require it.
	Form any

	// Errors groups validation messages by field name.
	Errors map[string][]string

	// Agents lists the chat personas for the AI chat page.
	Agents []agents.Agent
}

// Engine renders pages from templates compiled at startup.
type Engine struct {
	// funcMap provides custom template functions.
	funcMap template.FuncMap

	// pages maps template name to its compiled layout+body set.
	pages map[string]*template.Template
}

// NewEngine compiles the base layout and every built-in page body.
// An unparsable template or a catalog entry referencing a missing
// template is a startup failure.
func NewEngine() (*Engine, error) {
	e := &Engine{pages: make(map[string]*template.Template)}
	e.funcMap = e.buildFuncMap()

	base, err := template.New("base").Funcs(e.funcMap).Parse(baseTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base layout: %w", err)
	}

	for name, body := range builtinPageBodies() {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base layout for %s: %w", name, err)
		}
		if _, err := t.Parse(body); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		e.pages[name] = t
	}

	for _, p := range Catalog() {
		if _, ok := e.pages[p.TemplateName]; !ok {
			return nil, fmt.Errorf("page %s references unknown template %q", p.Route, p.TemplateName)
		}
	}
	for _, name := range []string{TemplateNotFound, TemplateServerError} {
		if _, ok := e.pages[name]; !ok {
			return nil, fmt.Errorf("error template %q is missing", name)
		}
	}

	return e, nil
}

// buildFuncMap creates the template function map.
func (e *Engine) buildFuncMap() template.FuncMap {
	return template.FuncMap{
		"currentYear": func() int {
			return time.Now().Year()
		},
		"titleCase": toTitleCase,
		// truncate counts runes so a limit can never split a
		// multibyte character.
		"truncate": func(s string, limit int) string {
			r := []rune(s)
			if len(r) <= limit {
				return s
			}
			if limit <= 3 {
				return string(r[:limit])
			}
			return string(r[:limit-3]) + "..."
		},
		// safeAttr marks a compile-time attribute string as trusted.
		// Never call it with visitor input.
		"safeAttr": func(s string) template.HTMLAttr {
			return template.HTMLAttr(s) //nolint:gosec // Intentional for trusted content
		},
		"eqStr": func(a, b string) bool {
			return a == b
		},
		"hasErrors": func(errs map[string][]string, field string) bool {
			return len(errs[field]) > 0
		},
		"fieldErrors": func(errs map[string][]string, field string) []string {
			return errs[field]
		},
	}
}

// Render executes the named page template into a buffer and only then
// writes the status and body, so a template fault can still fall back
// to the 500 page with nothing committed to the wire.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data ViewData) error {
	tmpl, ok := e.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	metrics.RecordPageView(name, time.Since(start))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s response: %w", name, err)
	}
	return nil
}

// RenderNotFound serves the 404 page.
func (e *Engine) RenderNotFound(w http.ResponseWriter, data ViewData) {
	metrics.RecordPageNotFound()
	if data.Title == "" {
		data.Title = "Page Not Found"
	}
	if err := e.Render(w, http.StatusNotFound, TemplateNotFound, data); err != nil {
		logging.Err(err).Msg("Failed to render 404 page")
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

// RenderServerError serves the 500 page, degrading to a plain-text
// response if even the error template fails.
func (e *Engine) RenderServerError(w http.ResponseWriter, data ViewData) {
	metrics.RecordPageServerError()
	if data.Title == "" {
		data.Title = "Something Went Wrong"
	}
	if err := e.Render(w, http.StatusInternalServerError, TemplateServerError, data); err != nil {
		logging.Err(err).Msg("Failed to render 500 page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// toTitleCase uppercases the first letter of each word, standing in
// for the deprecated strings.Title. Whitespace runs collapse to a
// single space.
func toTitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, w := range strings.Fields(s) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}
