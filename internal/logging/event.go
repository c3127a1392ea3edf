// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// EventLogger narrates the submission pipeline. The bus logs every
// domain edge through it (processed, dropped, unparseable) so the same
// field names appear regardless of which consumer was involved;
// watermill's own internals keep logging through the LoggerAdapter
// bridge.
type EventLogger struct {
	logger zerolog.Logger
}

// NewEventLogger creates a logger configured for submission-bus handlers.
func NewEventLogger() *EventLogger {
	return &EventLogger{logger: WithComponent("submission-bus")}
}

// NewEventLoggerWithLogger creates an EventLogger over a specific
// logger. Tests use it to capture output.
//
//nolint:gocritic // zerolog.Logger copies cheaply and is meant to be passed by value
func NewEventLoggerWithLogger(logger zerolog.Logger) *EventLogger {
	return &EventLogger{
		logger: logger.With().Str("component", "submission-bus").Logger(),
	}
}

// withContext copies the base logger, stamping any correlation and
// request IDs the context carries.
func (e *EventLogger) withContext(ctx context.Context) zerolog.Logger {
	lc := e.logger.With()
	if id := CorrelationIDFromContext(ctx); id != "" {
		lc = lc.Str("correlation_id", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	return lc.Logger()
}

// LogSubmissionProcessed logs one line per successfully consumed
// submission.
func (e *EventLogger) LogSubmissionProcessed(ctx context.Context, eventID, consumer string, durationMs int64) {
	logger := e.withContext(ctx)
	logger.Info().
		Str("event_id", eventID).
		Str("consumer", consumer).
		Int64("duration_ms", durationMs).
		Msg("submission processed")
}

// LogSubmissionDropped logs a submission abandoned after its retries
// were exhausted.
func (e *EventLogger) LogSubmissionDropped(consumer, messageUUID string, err error) {
	e.logger.Error().
		Str("consumer", consumer).
		Str("message_uuid", messageUUID).
		Err(err).
		Msg("submission dropped after retries")
}

// LogParseFailure logs a bus message whose payload did not decode.
// These are acked without retry; the payload will never parse.
func (e *EventLogger) LogParseFailure(consumer, messageUUID string, err error) {
	e.logger.Error().
		Str("consumer", consumer).
		Str("message_uuid", messageUUID).
		Err(err).
		Msg("submission payload unparseable")
}

// LogRouterStarted logs when the submission router starts.
func (e *EventLogger) LogRouterStarted() {
	e.logger.Info().Msg("submission router started")
}

// LogRouterStopped logs when the submission router stops.
func (e *EventLogger) LogRouterStopped() {
	e.logger.Info().Msg("submission router stopped")
}
