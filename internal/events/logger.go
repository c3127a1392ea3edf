// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package events carries accepted form submissions to side-effect
// consumers over an in-process message bus.
//
// logger.go - Watermill Logger Bridge
//
// This file adapts the application's zerolog-based logging package to
// watermill's LoggerAdapter interface so bus internals log through the
// same pipeline as the rest of the process.
package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bandstand/internal/logging"
)

// loggerAdapter implements watermill.LoggerAdapter over the logging
// package. Fields accumulated via With are attached to every event.
type loggerAdapter struct {
	fields watermill.LogFields
}

// NewLoggerAdapter returns a watermill logger writing through the
// application's zerolog pipeline.
func NewLoggerAdapter() watermill.LoggerAdapter {
	return &loggerAdapter{}
}

// Error logs a bus error.
func (l *loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.emit(logging.Err(err), fields, msg)
}

// Info logs bus lifecycle information.
func (l *loggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.emit(logging.Info(), fields, msg)
}

// Debug logs bus debugging detail.
func (l *loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.emit(logging.Debug(), fields, msg)
}

// Trace logs per-message detail.
func (l *loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.emit(logging.Trace(), fields, msg)
}

// With returns a logger that attaches the given fields to every event.
func (l *loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	merged := make(watermill.LogFields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &loggerAdapter{fields: merged}
}

func (l *loggerAdapter) emit(e *zerolog.Event, fields watermill.LogFields, msg string) {
	for k, v := range l.fields {
		// Per-call fields win over inherited ones.
		if _, shadowed := fields[k]; shadowed {
			continue
		}
		e = e.Interface(k, v)
	}
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}
