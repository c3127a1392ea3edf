// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package api

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/bandstand/internal/agents"
	"github.com/tomtom215/bandstand/internal/config"
	"github.com/tomtom215/bandstand/internal/events"
	"github.com/tomtom215/bandstand/internal/flash"
	"github.com/tomtom215/bandstand/internal/pages"
)

// newTestConfig returns a config with limits high enough that tests
// never trip a rate limiter by accident.
func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        5000,
			Environment: "development",
		},
		Security: config.SecurityConfig{
			SecretKey:             "test-secret-key",
			CORSOrigins:           []string{"*"},
			RateLimitRequests:     10000,
			RateLimitWindow:       time.Minute,
			FormRateLimitRequests: 10000,
			FormRateLimitWindow:   time.Minute,
		},
		Chat: config.ChatConfig{
			MaxMessageLength:        2000,
			StreamEnabled:           true,
			StreamMessagesPerMinute: 60,
		},
		Metrics: config.MetricsConfig{
			Enabled: true,
		},
	}
}

// capturePublisher is a SubmissionPublisher that records events.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.SubmissionEvent
	err    error
}

func (p *capturePublisher) Publish(ctx context.Context, event events.SubmissionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) published() []events.SubmissionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.SubmissionEvent, len(p.events))
	copy(out, p.events)
	return out
}

// newTestHandlers builds a full handler set over real dependencies and
// a capturing bus fake.
func newTestHandlers(t *testing.T, cfg *config.Config) (*Handlers, *capturePublisher) {
	t.Helper()

	engine, err := pages.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	store, err := flash.NewStore([]byte(cfg.Security.SecretKey))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	bus := &capturePublisher{}
	return NewHandlers(engine, store, agents.NewRegistry(), bus, cfg), bus
}

// newTestRouter builds the complete route table for integration tests.
func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *capturePublisher) {
	t.Helper()

	handlers, bus := newTestHandlers(t, cfg)
	return NewRouter(handlers, cfg).Setup(), bus
}
