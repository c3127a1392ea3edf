// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package logging

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// swapGlobal installs logger for the duration of the test and restores
// the previous global logger and level afterwards.
func swapGlobal(t *testing.T, logger zerolog.Logger) {
	t.Helper()
	prev := Logger()
	prevLevel := GetLevel()
	SetLogger(logger)
	t.Cleanup(func() {
		SetLogger(prev)
		SetLevel(prevLevel)
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	want := Config{Level: "info", Format: "json", Timestamp: true, Output: os.Stderr}
	if got := DefaultConfig(); got != want {
		t.Errorf("DefaultConfig() = %+v, want %+v", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"debug":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"fatal":    zerolog.FatalLevel,
		"panic":    zerolog.PanicLevel,
		"disabled": zerolog.Disabled,
		"ERROR":    zerolog.ErrorLevel,
		"Warn":     zerolog.WarnLevel,
		"verbose":  zerolog.InfoLevel,
		"":         zerolog.InfoLevel,
	}

	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	defer Init(DefaultConfig())

	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	Info().Str("addr", ":5000").Msg("Server listening")

	fields := decodeLine(t, &buf)
	if fields["level"] != "info" {
		t.Errorf("level = %v, want info", fields["level"])
	}
	if fields["message"] != "Server listening" {
		t.Errorf("message = %v", fields["message"])
	}
	if fields["addr"] != ":5000" {
		t.Errorf("addr = %v", fields["addr"])
	}
	if _, ok := fields["time"]; !ok {
		t.Error("timestamp missing from JSON output")
	}
}

func TestInitConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	defer Init(DefaultConfig())

	Init(Config{Level: "info", Format: "console", Timestamp: false, Output: &buf})
	Info().Msg("ready")

	out := buf.String()
	if strings.Contains(out, `"level"`) {
		t.Errorf("console output looks like JSON: %s", out)
	}
	if !strings.Contains(out, "INF") || !strings.Contains(out, "ready") {
		t.Errorf("console output missing level tag or message: %s", out)
	}
}

func TestInitEmptyFieldsFallBack(t *testing.T) {
	var buf bytes.Buffer
	defer Init(DefaultConfig())

	// Level and Format left empty fall back to info and json.
	Init(Config{Output: &buf})

	Debug().Msg("below default level")
	if buf.Len() != 0 {
		t.Fatalf("debug event written at default level: %s", buf.String())
	}

	Info().Msg("at default level")
	if fields := decodeLine(t, &buf); fields["level"] != "info" {
		t.Errorf("level = %v, want info", fields["level"])
	}
}

func TestEventStarterLevels(t *testing.T) {
	var buf bytes.Buffer
	swapGlobal(t, zerolog.New(&buf))
	SetLevel(zerolog.TraceLevel)

	starters := []struct {
		level string
		start func() *zerolog.Event
	}{
		{"trace", Trace},
		{"debug", Debug},
		{"info", Info},
		{"warn", Warn},
		{"error", Error},
	}

	for _, s := range starters {
		buf.Reset()
		s.start().Msg("probe")
		if fields := decodeLine(t, &buf); fields["level"] != s.level {
			t.Errorf("%s starter wrote level %v", s.level, fields["level"])
		}
	}
}

func TestErr(t *testing.T) {
	var buf bytes.Buffer
	swapGlobal(t, zerolog.New(&buf))

	Err(errors.New("render failed")).Msg("page error")

	fields := decodeLine(t, &buf)
	if fields["level"] != "error" {
		t.Errorf("level = %v, want error", fields["level"])
	}
	if fields["error"] != "render failed" {
		t.Errorf("error = %v", fields["error"])
	}

	buf.Reset()
	Err(nil).Msg("all good")
	if fields := decodeLine(t, &buf); fields["level"] != "info" {
		t.Errorf("Err(nil) logged at %v, want info", fields["level"])
	}
}

func TestWithDefaultFields(t *testing.T) {
	var buf bytes.Buffer
	swapGlobal(t, zerolog.New(&buf))

	busLog := With().Str("component", "submission-bus").Logger()
	busLog.Info().Msg("router running")

	fields := decodeLine(t, &buf)
	if fields["component"] != "submission-bus" {
		t.Errorf("component = %v, want submission-bus", fields["component"])
	}
}

func TestLevelRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	swapGlobal(t, zerolog.New(&buf))

	SetLevel(zerolog.WarnLevel)
	if got := GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("GetLevel() = %v after SetLevel(warn)", got)
	}

	Info().Msg("filtered")
	if buf.Len() != 0 {
		t.Errorf("info event written at warn level: %s", buf.String())
	}

	Warn().Msg("kept")
	if buf.Len() == 0 {
		t.Error("warn event filtered at warn level")
	}
}

func TestNewTestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	logger.Info().Str("venue", "9:30 Club").Msg("show added")

	fields := decodeLine(t, &buf)
	if fields["venue"] != "9:30 Club" {
		t.Errorf("venue = %v", fields["venue"])
	}
	if _, ok := fields["time"]; !ok {
		t.Error("test logger should stamp timestamps")
	}
}
