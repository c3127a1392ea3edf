// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package validation provides a thread-safe singleton validator configured
// for the site's form schemas, with errors keyed by the `form` struct tag.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError describes one field that failed one rule.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

// Field returns the posted form field name that failed.
func (e *ValidationError) Field() string { return e.field }

// Tag reports which validation rule rejected the value.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the rule's parameter, such as "100" for "max=100".
func (e *ValidationError) Param() string { return e.param }

// Value returns the rejected value.
func (e *ValidationError) Value() any { return e.value }

// Error returns the human-readable message for this failure.
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError aggregates every field failure from one
// submitted form, in struct field order.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field failures.
func (ve *RequestValidationError) Errors() []ValidationError { return ve.errors }

// Error joins the per-field messages with semicolons.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	for i := range ve.errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ve.errors[i].Error())
	}
	return b.String()
}

// GetValidator returns the process-wide validator, creating it on first
// use. Safe for concurrent callers.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report the `form` tag as the field name so messages line up
		// with the posted field names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		validate = v
	})
	return validate
}

// ValidateStruct runs the shared validator over s. A nil return means
// the struct passed; otherwise every failing field is reported.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError, meaning s was not a validatable
		// struct. Surface it as a single opaque entry.
		return &RequestValidationError{errors: []ValidationError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: messageFor(fe),
		})
	}
	return &RequestValidationError{errors: out}
}

// messageFor renders the friendly message for one failed rule. The
// wording feeds straight into the form error banners, so keep it plain
// English with the field named first.
func messageFor(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "min", "max":
		return minMaxMessage(fe.Tag(), field, param, fe.Kind() == reflect.String)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// minMaxMessage words length bounds differently for strings, where the
// limit counts characters rather than a numeric value.
func minMaxMessage(tag, field, param string, isString bool) string {
	bound := "at least"
	if tag == "max" {
		bound = "at most"
	}
	if isString {
		return fmt.Sprintf("%s must be %s %s characters", field, bound, param)
	}
	return fmt.Sprintf("%s must be %s %s", field, bound, param)
}
