// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package logging provides centralized zerolog-based structured logging for Bandstand.
//
// The server emits one JSON object per log line in production and a
// colorized console line during development. Every other package writes
// through this one, which keeps level filtering and field names uniform
// whether the line came from a page handler, the form pipeline, or a
// submission-bus consumer.
//
// # Initialization
//
// main calls Init exactly once, before anything else logs:
//
//	logging.Init(logging.Config{
//	    Level:  cfg.Logging.Level,   // trace, debug, info, warn, error, fatal
//	    Format: cfg.Logging.Format,  // json or console
//	    Caller: cfg.Logging.Caller,
//	})
//
// Packages that log before Init runs still work; the package variable
// starts out with DefaultConfig (info-level JSON on stderr).
//
// # Emitting Lines
//
// The package-level starters mirror zerolog's API. Chains must end in
// Msg or Send or nothing is written:
//
//	logging.Info().Str("page", "shows").Msg("Rendered")
//	logging.Err(err).Int("status", 500).Msg("Request failed")
//
// Prefer typed fields over Msgf. A line like
//
//	logging.Info().Str("form", name).Dur("elapsed", d).Msg("Submission validated")
//
// can be filtered and aggregated downstream; the Msgf equivalent cannot.
//
// # Request-Scoped Logging
//
// The api package's middleware stores a request-scoped logger carrying
// the request ID. Handlers recover it with Ctx:
//
//	logging.Ctx(r.Context()).Info().Str("form", "newsletter").Msg("Accepted")
//
// Lines logged this way correlate with the X-Request-Id header the
// middleware echoes to the client.
//
// # Derived Loggers
//
// Long-lived components take a logger once and reuse it:
//
//	log := logging.WithComponent("pages")
//	log.Info().Int("templates", n).Msg("Parsed")
//
// With returns a zerolog.Context for arbitrary default fields. The
// submission pipeline wraps its own narration in EventLogger, which
// stamps every line with the consumer name and message UUID.
//
// # Submission Privacy
//
// Contact and newsletter submissions carry visitor names and email
// addresses. Never log those raw; pass them through the sanitizers
// first:
//
//	logging.Info().
//	    Str("email", logging.SanitizeEmail(sub.Email)).
//	    Str("name", logging.SanitizeName(sub.Name)).
//	    Msg("Contact received")
//
// SanitizeEmail keeps the first character of the local part and the
// domain; SanitizeName keeps initials.
//
// # Supervision
//
// Suture v4 reports service restarts through a *slog.Logger. The bridge
// in slog_adapter.go routes those records into zerolog so supervisor
// output lands in the same stream as everything else:
//
//	events := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// # Output Shapes
//
// A production line:
//
//	{"level":"info","time":"2026-01-03T10:30:00Z","message":"Server listening","addr":":5000"}
//
// The console format renders the same event as:
//
//	10:30AM INF Server listening addr=:5000
//
// # Concurrency
//
// The package guards the global logger with a sync.RWMutex; Init,
// SetLogger, and SetLevel may be called while other goroutines log.
//
// # Testing
//
// Tests capture output by pointing a logger at a buffer:
//
//	var buf bytes.Buffer
//	log := logging.NewTestLogger(&buf)
//	log.Info().Msg("probe")
//
// Lines carry timestamps, so tests decode the JSON and assert on
// fields rather than comparing raw strings.
package logging
