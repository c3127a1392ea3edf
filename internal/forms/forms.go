// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package forms

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/bandstand/internal/validation"
)

// Error kinds, the closed taxonomy handlers and metrics share.
const (
	KindMissingValue = "missing_value"
	KindInvalidEmail = "invalid_email"
	KindTooShort     = "too_short"
	KindTooLong      = "too_long"
)

// tagKinds maps validator tags to the error taxonomy.
var tagKinds = map[string]string{
	"required": KindMissingValue,
	"email":    KindInvalidEmail,
	"min":      KindTooShort,
	"max":      KindTooLong,
}

// ContactForm carries a contact-page submission. Length bounds count
// runes, not bytes, and are inclusive.
type ContactForm struct {
	Name    string `form:"name" validate:"required,min=2,max=100"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required,min=10,max=2000"`
}

// NewsletterForm carries a newsletter signup.
type NewsletterForm struct {
	Email string `form:"email" validate:"required,email"`
}

// FieldError describes one failed check on one field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Result is the two-outcome validation verdict: Valid selects the
// redirect branch, anything else re-renders the page with Errors.
type Result struct {
	Valid  bool
	Errors []FieldError
}

// ErrorsByField groups messages per field for template display, keeping
// submission order within each field.
func (r Result) ErrorsByField() map[string][]string {
	if len(r.Errors) == 0 {
		return nil
	}

	grouped := make(map[string][]string, len(r.Errors))
	for _, fe := range r.Errors {
		grouped[fe.Field] = append(grouped[fe.Field], fe.Message)
	}
	return grouped
}

// BindContact parses a contact submission from the request body. Every
// field is trimmed so required fails on whitespace-only input; absent
// keys bind as empty strings and unknown keys are ignored.
func BindContact(r *http.Request) (*ContactForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("forms: parse contact form: %w", err)
	}

	return &ContactForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}, nil
}

// BindNewsletter parses a newsletter signup from the request body.
func BindNewsletter(r *http.Request) (*NewsletterForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("forms: parse newsletter form: %w", err)
	}

	return &NewsletterForm{
		Email: strings.TrimSpace(r.PostFormValue("email")),
	}, nil
}

// Validate runs the shared validator over the contact form.
func (f *ContactForm) Validate() Result {
	return toResult(validation.ValidateStruct(f))
}

// Validate runs the shared validator over the newsletter form.
func (f *NewsletterForm) Validate() Result {
	return toResult(validation.ValidateStruct(f))
}

// toResult converts the validation package's aggregate error to the
// two-outcome Result, mapping validator tags onto the error taxonomy.
func toResult(verr *validation.RequestValidationError) Result {
	if verr == nil {
		return Result{Valid: true}
	}

	errs := verr.Errors()
	fieldErrors := make([]FieldError, 0, len(errs))
	for i := range errs {
		ve := &errs[i]

		kind, ok := tagKinds[ve.Tag()]
		if !ok {
			// Tags outside the taxonomy pass through by name
			kind = ve.Tag()
		}

		fieldErrors = append(fieldErrors, FieldError{
			Field:   ve.Field(),
			Kind:    kind,
			Message: ve.Error(),
		})
	}

	return Result{Valid: false, Errors: fieldErrors}
}
