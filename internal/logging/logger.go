// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package logging provides centralized zerolog-based logging for Bandstand.
//
// Every component logs through the package-level event starters (Info,
// Warn, Error) or a derived logger from With, so level filtering and
// field naming stay uniform across the HTTP layer, the form pipeline,
// and the submission bus. Call Init once at startup; see doc.go for the
// full usage guide.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum emitted level: trace, debug, info, warn, error.
	Level string

	// Format selects the output encoding: json or console.
	Format string

	// Caller stamps each event with the logging call site.
	Caller bool

	// Timestamp stamps each event with the current time. On by default.
	Timestamp bool

	// Output receives the log stream. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the production defaults: info-level JSON on
// stderr with timestamps.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// global is the process-wide logger, guarded by mu so Init and the
// accessors can race safely.
var (
	global zerolog.Logger
	mu     sync.RWMutex
)

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	configure(DefaultConfig())
}

// Init reconfigures the global logger. Call it once config is loaded;
// calling again later is safe and swaps the configuration atomically.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	configure(cfg)
}

// configure rebuilds the global logger. Callers besides init hold mu.
func configure(cfg Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(buildWriter(cfg))
	if cfg.Timestamp {
		logger = logger.With().Timestamp().Logger()
	}
	if cfg.Caller {
		logger = logger.With().Caller().Logger()
	}
	global = logger
}

// buildWriter wraps the configured output for console format; JSON
// writes the raw stream.
func buildWriter(cfg Config) io.Writer {
	if cfg.Format != "console" {
		return cfg.Output
	}
	return zerolog.ConsoleWriter{
		Out:        cfg.Output,
		TimeFormat: "15:04:05",
	}
}

// levelNames maps configuration strings onto zerolog levels. "warning"
// is accepted as an alias for operators used to other loggers.
var levelNames = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
}

// parseLevel converts a level string to a zerolog level. Unknown
// strings fall back to info rather than failing startup.
func parseLevel(level string) zerolog.Level {
	if l, ok := levelNames[strings.ToLower(level)]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetLogger replaces the global logger, mainly for tests capturing
// output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// With opens a child-logger context carrying default fields:
//
//	busLogger := logging.With().Str("component", "submission-bus").Logger()
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return global.With()
}

// Trace starts a trace-level event. Used for per-frame stream detail.
func Trace() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return global.Trace()
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return global.Debug()
}

// Info starts an info-level event.
//
//	logging.Info().Str("addr", addr).Msg("Listening")
func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return global.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return global.Warn()
}

// Error starts an error-level event.
//
//	logging.Error().Err(err).Str("page", name).Msg("Render failed")
func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return global.Error()
}

// Fatal starts a fatal-level event; os.Exit(1) follows the Msg call.
func Fatal() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return global.Fatal()
}

// Err starts an error-level event with err attached, shorthand for
// Error().Err(err).
func Err(err error) *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return global.Err(err)
}

// GetLevel reports the global minimum level.
func GetLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

// SetLevel changes the global minimum level at runtime.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// NewTestLogger returns a logger writing timestamped JSON to w, for
// tests that assert on decoded output fields.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
