// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// contextKey is a private key type so values stored here cannot collide
// with other packages' context values.
type contextKey string

const (
	requestIDKey     contextKey = "request_id"
	correlationIDKey contextKey = "correlation_id"
	loggerKey        contextKey = "logger"
)

// correlationIDLen truncates correlation IDs for log readability;
// request IDs stay full length because they are echoed to clients.
const correlationIDLen = 8

// GenerateRequestID returns a full UUID, unique across restarts and
// instances.
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateCorrelationID returns a short random ID for tying together
// the log lines of one unit of work.
func GenerateCorrelationID() string {
	return uuid.New().String()[:correlationIDLen]
}

// stringFromContext reads a string stored under key, or "" when absent.
func stringFromContext(ctx context.Context, key contextKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// ContextWithRequestID stores an HTTP request ID. The request ID
// middleware calls this for every request.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithNewRequestID stores a freshly generated request ID.
func ContextWithNewRequestID(ctx context.Context) context.Context {
	return ContextWithRequestID(ctx, GenerateRequestID())
}

// RequestIDFromContext reads the request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, requestIDKey)
}

// ContextWithCorrelationID stores a correlation ID. The submission bus
// stamps one onto each delivery so consumer logs line up with the
// originating form post.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextWithNewCorrelationID stores a freshly generated correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext reads the correlation ID, or "" when absent.
func CorrelationIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, correlationIDKey)
}

// ContextWithLogger stores a pre-configured logger, letting middleware
// hand request-scoped loggers to handlers.
//
//nolint:gocritic // zerolog.Logger copies cheaply and is meant to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored in ctx, falling back to
// the global logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return l
	}
	return Logger()
}

// CtxWith opens a child-logger context carrying whichever of
// request_id and correlation_id are present in ctx. Use it when a
// handler wants extra default fields:
//
//	log := logging.CtxWith(ctx).Str("form", "contact").Logger()
func CtxWith(ctx context.Context) zerolog.Context {
	logCtx := LoggerFromContext(ctx).With()
	if id := CorrelationIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	return logCtx
}

// Ctx returns a logger that stamps every event with the IDs found in
// ctx. Handlers and bus consumers log through this:
//
//	logging.Ctx(ctx).Info().Msg("Submission accepted")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := CtxWith(ctx).Logger()
	return &logger
}

// Shorthands over Ctx for the common one-event case.
func CtxDebug(ctx context.Context) *zerolog.Event { return Ctx(ctx).Debug() }
func CtxInfo(ctx context.Context) *zerolog.Event  { return Ctx(ctx).Info() }
func CtxWarn(ctx context.Context) *zerolog.Event  { return Ctx(ctx).Warn() }
func CtxError(ctx context.Context) *zerolog.Event { return Ctx(ctx).Error() }

// CtxErr is shorthand for Ctx(ctx).Err(err).
func CtxErr(ctx context.Context, err error) *zerolog.Event { return Ctx(ctx).Err(err) }

// WithComponent returns a logger stamped with a component field:
//
//	log := logging.WithComponent("pages")
func WithComponent(name string) zerolog.Logger {
	return With().Str("component", name).Logger()
}
