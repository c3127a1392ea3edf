// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package events carries accepted form submissions to side-effect
// consumers over an in-process message bus.
//
// consumers.go - Built-in Submission Consumers
//
// TODO: add an email delivery consumer for contact submissions once the
// band has an outbound mail account; until then the structured log line
// is the only record.
package events

import (
	"context"

	"github.com/tomtom215/bandstand/internal/logging"
)

// ConsumerSubmissionLog is the handler name of the audit log consumer.
const ConsumerSubmissionLog = "submission-log"

// NewSubmissionLogConsumer returns the consumer that writes one
// structured log line per accepted submission. The email is masked and
// the message body never reaches the bus, so the log stays PII-light.
func NewSubmissionLogConsumer() ConsumerFunc {
	return func(ctx context.Context, event SubmissionEvent) error {
		entry := logging.CtxInfo(ctx).
			Str("event_id", event.EventID).
			Str("form", event.Form).
			Str("email", logging.SanitizeEmail(event.Email)).
			Int("message_chars", event.MessageChars).
			Time("occurred_at", event.OccurredAt)
		if event.Name != "" {
			entry = entry.Str("name", logging.SanitizeName(event.Name))
		}
		entry.Msg("Submission received")
		return nil
	}
}
