// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

/*
Package forms declares the site's form schemas and their validation.

Two forms exist: the contact form (name, email, message) and the
newsletter signup (email). Rules live in struct tags and run through
the shared validator, so field names in errors are the wire names the
templates post.

# Binding

BindContact and BindNewsletter parse the request body and trim every
field. Trimming happens before validation, so "   " fails required the
same way an absent key does. Length bounds count runes: a message of
2000 multi-byte characters passes max=2000.

# Two-Outcome Validation

Validate returns a Result rather than an error:

	form, err := forms.BindContact(r)
	if err != nil { ... }          // malformed body, not a validation failure

	result := form.Validate()
	if result.Valid {
	    // set flash, publish event, redirect 303
	} else {
	    // re-render the page with result.Errors, HTTP 200
	}

Every failing field reports at least its first error. FieldError.Kind is
one of missing_value, invalid_email, too_short, too_long, a closed set
shared with the form metrics.

See internal/validation for the validator configuration and message
templates, and internal/api for the handlers consuming Result.
*/
package forms
