// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package pages

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/bandstand/internal/agents"
	"github.com/tomtom215/bandstand/internal/flash"
	"github.com/tomtom215/bandstand/internal/forms"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

// renderPage renders a template through the engine and returns the body.
func renderPage(t *testing.T, engine *Engine, status int, name string, data ViewData) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := engine.Render(rec, status, name, data); err != nil {
		t.Fatalf("Render(%s) failed: %v", name, err)
	}
	return rec
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t)

	// Every catalog template plus both error pages must be compiled.
	for _, p := range Catalog() {
		if _, ok := engine.pages[p.TemplateName]; !ok {
			t.Errorf("Template %q for %s not compiled", p.TemplateName, p.Route)
		}
	}
	for _, name := range []string{TemplateNotFound, TemplateServerError} {
		if _, ok := engine.pages[name]; !ok {
			t.Errorf("Error template %q not compiled", name)
		}
	}
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()

	if len(catalog) != 12 {
		t.Fatalf("Expected 12 pages, got %d", len(catalog))
	}

	t.Run("routes and aliases are unique", func(t *testing.T) {
		seen := make(map[string]string)
		for _, p := range catalog {
			paths := append([]string{p.Route}, p.LegacyAliases...)
			for _, path := range paths {
				if !strings.HasPrefix(path, "/") {
					t.Errorf("Path %q for %s does not start with /", path, p.TemplateName)
				}
				if prev, dup := seen[path]; dup {
					t.Errorf("Path %q claimed by both %s and %s", path, prev, p.TemplateName)
				}
				seen[path] = p.TemplateName
			}
		}
	})

	t.Run("renamed routes keep their old paths", func(t *testing.T) {
		byRoute := make(map[string]Page)
		for _, p := range catalog {
			byRoute[p.Route] = p
		}

		wantAliases := map[string][]string{
			"/new-music":      {"/music-release", "/music_release_page.html"},
			"/archived-music": {"/music", "/music_page.html"},
			"/collaboration":  {"/gifts_and_sponsorships_page.html"},
			"/":               {"/home_page.html", "/index.html"},
		}
		for route, aliases := range wantAliases {
			p, ok := byRoute[route]
			if !ok {
				t.Errorf("Route %s missing from catalog", route)
				continue
			}
			for _, alias := range aliases {
				found := false
				for _, got := range p.LegacyAliases {
					if got == alias {
						found = true
					}
				}
				if !found {
					t.Errorf("Route %s missing alias %s (has %v)", route, alias, p.LegacyAliases)
				}
			}
		}
	})

	t.Run("no debug page", func(t *testing.T) {
		for _, p := range catalog {
			if p.Route == "/debug" {
				t.Error("Debug page must not be in the catalog")
			}
			for _, alias := range p.LegacyAliases {
				if strings.Contains(alias, "debug") {
					t.Errorf("Debug alias %q on %s", alias, p.Route)
				}
			}
		}
	})

	t.Run("titles are set", func(t *testing.T) {
		for _, p := range catalog {
			if p.Title == "" {
				t.Errorf("Page %s has no title", p.Route)
			}
		}
	})
}

func TestRender(t *testing.T) {
	engine := newTestEngine(t)

	rec := renderPage(t, engine, http.StatusOK, TemplateHome, ViewData{Title: "Home"})

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"<title>Home | Bandstand</title>",
		`href="#main"`,
		`<nav aria-label="Primary">`,
		"&copy; " + strconv.Itoa(time.Now().Year()),
		`href="/accessibility"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Home page missing %q", want)
		}
	}
}

func TestRenderAllCatalogPages(t *testing.T) {
	engine := newTestEngine(t)
	registry := agents.NewRegistry()

	for _, p := range Catalog() {
		t.Run(p.TemplateName, func(t *testing.T) {
			data := ViewData{Title: p.Title, Agents: registry.List()}
			switch p.TemplateName {
			case TemplateContact:
				data.Form = &forms.ContactForm{}
			case TemplateNewsletter:
				data.Form = &forms.NewsletterForm{}
			}

			rec := renderPage(t, engine, http.StatusOK, p.TemplateName, data)
			if rec.Code != http.StatusOK {
				t.Errorf("Status = %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "<title>"+p.Title+" | Bandstand</title>") {
				t.Errorf("Title %q not rendered", p.Title)
			}
		})
	}
}

func TestRenderEscapesUserContent(t *testing.T) {
	engine := newTestEngine(t)

	form := &forms.ContactForm{
		Name:    `<script>alert("xss")</script>`,
		Email:   "a@b.co",
		Message: `"><img src=x onerror=alert(1)>`,
	}
	rec := renderPage(t, engine, http.StatusOK, TemplateContact, ViewData{
		Title: "Contact",
		Form:  form,
	})

	body := rec.Body.String()
	if strings.Contains(body, "<script>alert") {
		t.Error("Script tag from user input not escaped")
	}
	if strings.Contains(body, "<img src=x") {
		t.Error("Attribute breakout from user input not escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("Escaped form of user input missing; value not repopulated?")
	}
}

func TestRenderFormRepopulation(t *testing.T) {
	engine := newTestEngine(t)

	form := &forms.ContactForm{Name: "Jane Doe", Email: "jane@example.com", Message: "short"}
	result := form.Validate()
	rec := renderPage(t, engine, http.StatusOK, TemplateContact, ViewData{
		Title:  "Contact",
		Form:   form,
		Errors: result.ErrorsByField(),
	})

	body := rec.Body.String()
	if !strings.Contains(body, `value="Jane Doe"`) {
		t.Error("Name not repopulated")
	}
	if !strings.Contains(body, `value="jane@example.com"`) {
		t.Error("Email not repopulated")
	}
	if !strings.Contains(body, ">short</textarea>") {
		t.Error("Message not repopulated")
	}
	if !strings.Contains(body, "message must be at least 10 characters") {
		t.Error("Validation message not rendered")
	}
	if !strings.Contains(body, `aria-invalid="true"`) {
		t.Error("Invalid field not marked aria-invalid")
	}
}

func TestRenderFlash(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("flash banner", func(t *testing.T) {
		msg := flash.Success("Message sent successfully!")
		rec := renderPage(t, engine, http.StatusOK, TemplateHome, ViewData{
			Title: "Home",
			Flash: &msg,
		})

		body := rec.Body.String()
		if !strings.Contains(body, "Message sent successfully!") {
			t.Error("Flash text not rendered")
		}
		if !strings.Contains(body, `class="flash flash-success"`) {
			t.Error("Flash category class missing")
		}
		if !strings.Contains(body, `role="status"`) {
			t.Error("Flash banner missing status role")
		}
	})

	t.Run("no banner without flash", func(t *testing.T) {
		rec := renderPage(t, engine, http.StatusOK, TemplateHome, ViewData{Title: "Home"})
		if strings.Contains(rec.Body.String(), `class="flash`) {
			t.Error("Flash banner rendered with no message")
		}
	})
}

func TestRenderAgents(t *testing.T) {
	engine := newTestEngine(t)
	list := agents.NewRegistry().List()

	rec := renderPage(t, engine, http.StatusOK, TemplateAIChat, ViewData{
		Title:  "AI Chat",
		Agents: list,
	})

	body := rec.Body.String()
	for _, agent := range list {
		if !strings.Contains(body, `data-agent-id="`+agent.ID+`"`) {
			t.Errorf("Agent card for %s missing", agent.ID)
		}
		if !strings.Contains(body, agent.Name) {
			t.Errorf("Agent name %q missing", agent.Name)
		}
	}
	if !strings.Contains(body, ">Online</p>") {
		t.Error("Agent status not title-cased to Online")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	if err := engine.Render(rec, http.StatusOK, "no_such_page", ViewData{}); err == nil {
		t.Error("Expected error for unknown template")
	}
	if rec.Body.Len() != 0 {
		t.Error("Unknown template wrote a body")
	}
}

func TestRenderBuffersBeforeWriting(t *testing.T) {
	engine := newTestEngine(t)

	// A template that fails mid-execution must leave the response
	// untouched so the caller can still serve the 500 page.
	broken := template.Must(template.New("base").Parse(`before {{.Form.NoSuchField}} after`))
	engine.pages["broken"] = broken

	rec := httptest.NewRecorder()
	err := engine.Render(rec, http.StatusOK, "broken", ViewData{Form: &forms.ContactForm{}})
	if err == nil {
		t.Fatal("Expected execution error")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("Partial output written: %q", rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "" {
		t.Error("Headers set despite render failure")
	}
}

func TestRenderNotFound(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.RenderNotFound(rec, ViewData{})

	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "404") {
		t.Error("404 page missing status text")
	}
	if !strings.Contains(body, "<title>Page Not Found | Bandstand</title>") {
		t.Error("Default 404 title not applied")
	}
}

func TestRenderServerError(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.RenderServerError(rec, ViewData{})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "500") {
		t.Error("500 page missing status text")
	}
	if !strings.Contains(body, "<title>Something Went Wrong | Bandstand</title>") {
		t.Error("Default 500 title not applied")
	}
}

func TestTemplateFunctions(t *testing.T) {
	engine := newTestEngine(t)

	// render executes a one-off template against the engine's funcMap.
	render := func(t *testing.T, src string, data any) string {
		t.Helper()
		tmpl, err := template.New("probe").Funcs(engine.funcMap).Parse(src)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		var sb strings.Builder
		if err := tmpl.Execute(&sb, data); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		return sb.String()
	}

	t.Run("currentYear", func(t *testing.T) {
		got := render(t, `{{currentYear}}`, nil)
		if got != strconv.Itoa(time.Now().Year()) {
			t.Errorf("currentYear = %q", got)
		}
	})

	t.Run("titleCase", func(t *testing.T) {
		got := render(t, `{{titleCase "cosmic guide"}}`, nil)
		if got != "Cosmic Guide" {
			t.Errorf("titleCase = %q", got)
		}
	})

	t.Run("truncate", func(t *testing.T) {
		got := render(t, `{{truncate "This is a very long string" 10}}`, nil)
		if got != "This is..." {
			t.Errorf("truncate = %q", got)
		}
	})

	t.Run("truncate leaves short strings alone", func(t *testing.T) {
		got := render(t, `{{truncate "short" 10}}`, nil)
		if got != "short" {
			t.Errorf("truncate = %q", got)
		}
	})

	t.Run("safeAttr", func(t *testing.T) {
		got := render(t, `<p {{safeAttr "data-x=\"1\""}}>ok</p>`, nil)
		if got != `<p data-x="1">ok</p>` {
			t.Errorf("safeAttr = %q", got)
		}
	})

	t.Run("eqStr", func(t *testing.T) {
		if got := render(t, `{{if eqStr "online" "online"}}same{{end}}`, nil); got != "same" {
			t.Errorf("eqStr equal = %q", got)
		}
		if got := render(t, `{{if eqStr "online" "away"}}same{{else}}diff{{end}}`, nil); got != "diff" {
			t.Errorf("eqStr different = %q", got)
		}
	})

	t.Run("hasErrors and fieldErrors", func(t *testing.T) {
		errs := map[string][]string{"name": {"name is required"}}
		got := render(t, `{{if hasErrors .E "name"}}bad{{end}}{{if hasErrors .E "email"}}worse{{end}}`, map[string]any{"E": errs})
		if got != "bad" {
			t.Errorf("hasErrors = %q", got)
		}
		got = render(t, `{{range fieldErrors .E "name"}}[{{.}}]{{end}}`, map[string]any{"E": errs})
		if got != "[name is required]" {
			t.Errorf("fieldErrors = %q", got)
		}
	})
}

func BenchmarkRenderHome(b *testing.B) {
	engine, err := NewEngine()
	if err != nil {
		b.Fatalf("NewEngine failed: %v", err)
	}
	data := ViewData{Title: "Home"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := httptest.NewRecorder()
		if err := engine.Render(rec, http.StatusOK, TemplateHome, data); err != nil {
			b.Fatal(err)
		}
	}
}
