// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// handlers_forms.go - Form Submission Handlers
//
// POST handlers for the contact and newsletter forms. Both follow the
// same two-outcome flow: an invalid submission re-renders the page with
// inline errors and the submitted values (status 200), a valid one sets
// a flash message, publishes a submission event, and redirects with
// 303 See Other so a refresh cannot repost.

package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/tomtom215/bandstand/internal/events"
	"github.com/tomtom215/bandstand/internal/flash"
	"github.com/tomtom215/bandstand/internal/forms"
	"github.com/tomtom215/bandstand/internal/logging"
	"github.com/tomtom215/bandstand/internal/metrics"
	"github.com/tomtom215/bandstand/internal/pages"
)

// Flash texts shown after an accepted submission. The wording is part
// of the site's public behavior; tests pin it.
const (
	flashContactSent         = "Message sent successfully!"
	flashNewsletterConfirmed = "Thank you for subscribing!"
)

// ContactSubmit handles POST /contact.
func (h *Handlers) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	form, err := forms.BindContact(r)
	if err != nil {
		logging.CtxWarn(r.Context()).Err(err).Msg("Malformed contact form body")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	result := form.Validate()
	if !result.Valid {
		h.rerenderForm(w, r, pages.TemplateContact, "Contact", form, result)
		return
	}

	metrics.RecordFormSubmission(events.FormContact, true)
	event := events.NewContactSubmission(form.Name, form.Email, utf8.RuneCountInString(form.Message))
	h.acceptSubmission(w, r, flashContactSent, event)
}

// NewsletterSubmit handles POST /newsletter.
func (h *Handlers) NewsletterSubmit(w http.ResponseWriter, r *http.Request) {
	form, err := forms.BindNewsletter(r)
	if err != nil {
		logging.CtxWarn(r.Context()).Err(err).Msg("Malformed newsletter form body")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	result := form.Validate()
	if !result.Valid {
		h.rerenderForm(w, r, pages.TemplateNewsletter, "Newsletter", form, result)
		return
	}

	metrics.RecordFormSubmission(events.FormNewsletter, true)
	h.acceptSubmission(w, r, flashNewsletterConfirmed, events.NewNewsletterSubmission(form.Email))
}

// rerenderForm serves the failed-validation branch: the same page, the
// submitted values, and the grouped error messages. Status stays 200;
// the error state is page content, not a protocol failure.
func (h *Handlers) rerenderForm(w http.ResponseWriter, r *http.Request, template, title string, form any, result forms.Result) {
	metrics.RecordFormSubmission(template, false)
	for _, fieldErr := range result.Errors {
		metrics.RecordFormValidationError(template, fieldErr.Field, fieldErr.Kind)
	}
	logging.CtxDebug(r.Context()).
		Str("form", template).
		Int("errors", len(result.Errors)).
		Msg("Form validation failed")

	data := pages.ViewData{
		Title:  title,
		Form:   form,
		Errors: result.ErrorsByField(),
	}
	if err := h.engine.Render(w, http.StatusOK, template, data); err != nil {
		logging.CtxErr(r.Context(), err).Str("template", template).Msg("Failed to re-render form")
		h.engine.RenderServerError(w, pages.ViewData{})
	}
}

// acceptSubmission serves the success branch: flash, publish, redirect
// back to the form's own path.
func (h *Handlers) acceptSubmission(w http.ResponseWriter, r *http.Request, flashText string, event events.SubmissionEvent) {
	if err := h.flashes.Set(w, flash.Success(flashText)); err != nil {
		// The submission still succeeded; the user just won't see the
		// confirmation banner after the redirect.
		logging.CtxErr(r.Context(), err).Msg("Failed to set flash cookie")
	}

	if h.bus != nil {
		if err := h.bus.Publish(r.Context(), event); err != nil {
			logging.CtxErr(r.Context(), err).
				Str("form", event.Form).
				Str("event_id", event.EventID).
				Msg("Failed to publish submission event")
		}
	} else {
		logging.CtxInfo(r.Context()).
			Str("form", event.Form).
			Str("email", logging.SanitizeEmail(event.Email)).
			Msg("Submission accepted (no bus configured)")
	}

	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}
