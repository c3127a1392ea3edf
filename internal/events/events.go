// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package events carries accepted form submissions to side-effect
// consumers over an in-process message bus.
//
// events.go - Submission Event Schema
//
// This file defines the canonical submission event. The event carries
// the submitter's email and the message LENGTH, never the message body,
// so the bus and its consumers hold no visitor prose.
package events

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// TopicSubmissions is the bus topic every submission event is published
// to. Consumers filter on the Form field when they care about one kind.
const TopicSubmissions = "submissions"

// Form kinds carried by submission events.
const (
	FormContact    = "contact"
	FormNewsletter = "newsletter"
)

// SubmissionEvent records one accepted form submission.
type SubmissionEvent struct {
	// EventID uniquely identifies the submission.
	EventID string `json:"event_id"`

	// Form is the kind of form submitted: contact or newsletter.
	Form string `json:"form"`

	// Name is the submitter's name. Empty for newsletter signups.
	Name string `json:"name,omitempty"`

	// Email is the submitter's address. Consumers must sanitize it
	// before logging.
	Email string `json:"email"`

	// MessageChars is the rune count of the contact message. Zero for
	// newsletter signups. The message body itself never enters the bus.
	MessageChars int `json:"message_chars,omitempty"`

	// OccurredAt is when the submission was accepted.
	OccurredAt time.Time `json:"occurred_at"`
}

// NewContactSubmission creates an event for an accepted contact form.
func NewContactSubmission(name, email string, messageChars int) SubmissionEvent {
	return SubmissionEvent{
		EventID:      uuid.New().String(),
		Form:         FormContact,
		Name:         name,
		Email:        email,
		MessageChars: messageChars,
		OccurredAt:   time.Now().UTC(),
	}
}

// NewNewsletterSubmission creates an event for an accepted newsletter signup.
func NewNewsletterSubmission(email string) SubmissionEvent {
	return SubmissionEvent{
		EventID:    uuid.New().String(),
		Form:       FormNewsletter,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

// Validate reports the first missing or malformed field.
func (e *SubmissionEvent) Validate() error {
	switch {
	case e.EventID == "":
		return errMissing("event_id")
	case e.Form != FormContact && e.Form != FormNewsletter:
		return &ValidationError{Field: "form", Message: "must be contact or newsletter"}
	case e.Email == "":
		return errMissing("email")
	case e.OccurredAt.IsZero():
		return errMissing("occurred_at")
	}
	return nil
}

// ValidationError reports an invalid submission event field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "submission event: " + e.Field + " " + e.Message
}

func errMissing(field string) error {
	return &ValidationError{Field: field, Message: "required"}
}

// SerializeEvent encodes an event as JSON for the wire.
func SerializeEvent(e *SubmissionEvent) ([]byte, error) {
	return json.Marshal(e)
}

// DeserializeEvent decodes an event from its wire form.
func DeserializeEvent(data []byte) (*SubmissionEvent, error) {
	var e SubmissionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
