// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package validation checks the site's posted forms against their
// declared schemas.
//
// It is a thin layer over go-playground/validator v10. The wrapper owns
// two decisions that every form shares: errors name fields by their
// `form` struct tag rather than the Go identifier, and every failure is
// translated into a sentence fit for the error banner on the page.
//
// # Usage
//
// Declare the schema with both tags, then hand the bound struct to
// ValidateStruct:
//
//	type ContactForm struct {
//	    Name    string `form:"name" validate:"required,min=2,max=100"`
//	    Email   string `form:"email" validate:"required,email"`
//	    Message string `form:"message" validate:"required,min=10,max=2000"`
//	}
//
//	if verr := validation.ValidateStruct(&form); verr != nil {
//	    for _, fe := range verr.Errors() {
//	        log.Printf("%s: %s", fe.Field(), fe.Error())
//	    }
//	}
//
// A nil return means the whole struct passed. Otherwise the
// RequestValidationError lists one ValidationError per failing field, in
// struct declaration order, each exposing the posted field name, the
// failing rule, the rule's parameter, and the rejected value.
//
// # Messages
//
// Rule failures become plain sentences that start with the field name,
// so handlers can show them to visitors without further formatting:
//
//	"name is required"
//	"email must be a valid email address"
//	"message must be at least 10 characters"
//	"category must be one of: success error"
//
// Length rules on strings count runes, so a message written in accented
// or non-Latin script is measured the way the visitor typed it.
//
// # Concurrency
//
// One validator instance serves the whole process. It is built on first
// use behind a sync.Once and caches parsed struct metadata, so handlers
// call ValidateStruct freely from concurrent requests.
//
// The form schemas themselves live in internal/forms.
package validation
