// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/bandstand/internal/logging"
)

const receiveTimeout = 5 * time.Second

// testConfig returns a bus config with fast retry timing for tests.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Retry.InitialInterval = time.Millisecond
	cfg.Retry.MaxInterval = 5 * time.Millisecond
	cfg.CloseTimeout = 2 * time.Second
	return cfg
}

// startBus creates a bus, registers consumers, runs it, and arranges
// shutdown via test cleanup.
func startBus(t *testing.T, cfg Config, register func(*Bus)) *Bus {
	t.Helper()

	bus, err := NewBus(cfg, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("NewBus failed: %v", err)
	}
	register(bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bus.Run(ctx) }()

	select {
	case <-bus.Running():
	case <-time.After(receiveTimeout):
		t.Fatal("Bus never started")
	}

	t.Cleanup(func() {
		cancel()
		if err := bus.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
		select {
		case <-done:
		case <-time.After(receiveTimeout):
			t.Error("Bus did not stop")
		}
	})
	return bus
}

func receiveEvent(t *testing.T, ch <-chan SubmissionEvent) SubmissionEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(receiveTimeout):
		t.Fatal("Timed out waiting for event")
		return SubmissionEvent{}
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.BufferSize <= 0 {
		t.Error("BufferSize must be positive")
	}
	if cfg.Retry.MaxRetries <= 0 {
		t.Error("Retry.MaxRetries must be positive")
	}
	if cfg.Retry.Multiplier != 2.0 {
		t.Errorf("Retry.Multiplier = %v, want 2.0", cfg.Retry.Multiplier)
	}
	if cfg.CloseTimeout <= 0 {
		t.Error("CloseTimeout must be positive")
	}
}

func TestBusDeliversToConsumer(t *testing.T) {
	received := make(chan SubmissionEvent, 4)
	bus := startBus(t, testConfig(), func(b *Bus) {
		b.AddConsumer("collector", func(ctx context.Context, event SubmissionEvent) error {
			received <- event
			return nil
		})
	})

	contact := NewContactSubmission("Jane", "jane@example.com", 57)
	if err := bus.Publish(context.Background(), contact); err != nil {
		t.Fatalf("Publish contact failed: %v", err)
	}
	newsletter := NewNewsletterSubmission("fan@example.com")
	if err := bus.Publish(context.Background(), newsletter); err != nil {
		t.Fatalf("Publish newsletter failed: %v", err)
	}

	first := receiveEvent(t, received)
	if first.EventID != contact.EventID || first.Form != FormContact {
		t.Errorf("First event = %+v, want contact %s", first, contact.EventID)
	}
	if first.MessageChars != 57 {
		t.Errorf("MessageChars = %d, want 57", first.MessageChars)
	}

	second := receiveEvent(t, received)
	if second.EventID != newsletter.EventID || second.Form != FormNewsletter {
		t.Errorf("Second event = %+v, want newsletter %s", second, newsletter.EventID)
	}
}

func TestBusFansOutToAllConsumers(t *testing.T) {
	logReceived := make(chan SubmissionEvent, 1)
	auditReceived := make(chan SubmissionEvent, 1)
	bus := startBus(t, testConfig(), func(b *Bus) {
		b.AddConsumer("first", func(ctx context.Context, event SubmissionEvent) error {
			logReceived <- event
			return nil
		})
		b.AddConsumer("second", func(ctx context.Context, event SubmissionEvent) error {
			auditReceived <- event
			return nil
		})
	})

	event := NewNewsletterSubmission("fan@example.com")
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if got := receiveEvent(t, logReceived); got.EventID != event.EventID {
		t.Errorf("First consumer got %q, want %q", got.EventID, event.EventID)
	}
	if got := receiveEvent(t, auditReceived); got.EventID != event.EventID {
		t.Errorf("Second consumer got %q, want %q", got.EventID, event.EventID)
	}
}

func TestBusRetriesTransientFailure(t *testing.T) {
	var attempts atomic.Int32
	succeeded := make(chan SubmissionEvent, 1)
	bus := startBus(t, testConfig(), func(b *Bus) {
		b.AddConsumer("flaky", func(ctx context.Context, event SubmissionEvent) error {
			if attempts.Add(1) < 3 {
				return errors.New("transient failure")
			}
			succeeded <- event
			return nil
		})
	})

	event := NewNewsletterSubmission("fan@example.com")
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if got := receiveEvent(t, succeeded); got.EventID != event.EventID {
		t.Errorf("Got %q, want %q", got.EventID, event.EventID)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("Attempts = %d, want 3", got)
	}
}

func TestBusDropsAfterRetriesExhausted(t *testing.T) {
	cfg := testConfig()
	cfg.Retry.MaxRetries = 1

	var poisonAttempts atomic.Int32
	received := make(chan SubmissionEvent, 2)
	bus := startBus(t, cfg, func(b *Bus) {
		b.AddConsumer("selective", func(ctx context.Context, event SubmissionEvent) error {
			if event.Name == "poison" {
				poisonAttempts.Add(1)
				return errors.New("permanent failure")
			}
			received <- event
			return nil
		})
	})

	poison := NewContactSubmission("poison", "bad@example.com", 1)
	if err := bus.Publish(context.Background(), poison); err != nil {
		t.Fatalf("Publish poison failed: %v", err)
	}
	good := NewContactSubmission("good", "good@example.com", 1)
	if err := bus.Publish(context.Background(), good); err != nil {
		t.Fatalf("Publish good failed: %v", err)
	}

	// The poison message must be dropped after its retries, not
	// redelivered forever, or the good message never arrives.
	if got := receiveEvent(t, received); got.EventID != good.EventID {
		t.Errorf("Got %q, want %q", got.EventID, good.EventID)
	}
	if got := poisonAttempts.Load(); got != 2 {
		t.Errorf("Poison attempts = %d, want 2 (initial + 1 retry)", got)
	}
}

func TestBusRecoversFromPanic(t *testing.T) {
	cfg := testConfig()
	cfg.Retry.MaxRetries = 1

	received := make(chan SubmissionEvent, 2)
	bus := startBus(t, cfg, func(b *Bus) {
		b.AddConsumer("panicky", func(ctx context.Context, event SubmissionEvent) error {
			if event.Name == "panic" {
				panic("consumer exploded")
			}
			received <- event
			return nil
		})
	})

	if err := bus.Publish(context.Background(), NewContactSubmission("panic", "boom@example.com", 1)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	good := NewContactSubmission("good", "good@example.com", 1)
	if err := bus.Publish(context.Background(), good); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if got := receiveEvent(t, received); got.EventID != good.EventID {
		t.Errorf("Got %q, want %q", got.EventID, good.EventID)
	}
}

func TestBusRejectsInvalidEvent(t *testing.T) {
	received := make(chan SubmissionEvent, 1)
	bus := startBus(t, testConfig(), func(b *Bus) {
		b.AddConsumer("collector", func(ctx context.Context, event SubmissionEvent) error {
			received <- event
			return nil
		})
	})

	err := bus.Publish(context.Background(), SubmissionEvent{})
	if err == nil {
		t.Fatal("Expected error for invalid event")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Error type = %T", err)
	}

	select {
	case event := <-received:
		t.Errorf("Invalid event was delivered: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusPropagatesCorrelationID(t *testing.T) {
	correlations := make(chan string, 1)
	bus := startBus(t, testConfig(), func(b *Bus) {
		b.AddConsumer("correlating", func(ctx context.Context, event SubmissionEvent) error {
			correlations <- logging.CorrelationIDFromContext(ctx)
			return nil
		})
	})

	ctx := context.WithValue(context.Background(), chimiddleware.RequestIDKey, "req-abc123")
	if err := bus.Publish(ctx, NewNewsletterSubmission("fan@example.com")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case got := <-correlations:
		if got != "req-abc123" {
			t.Errorf("Correlation ID = %q, want req-abc123", got)
		}
	case <-time.After(receiveTimeout):
		t.Fatal("Timed out waiting for consumer")
	}
}

func TestSubmissionLogConsumer(t *testing.T) {
	// The builtin consumer must never fail: a logging problem should
	// not trigger retries or drops.
	consumer := NewSubmissionLogConsumer()

	events := []SubmissionEvent{
		NewContactSubmission("Jane", "jane@example.com", 57),
		NewNewsletterSubmission("fan@example.com"),
		{EventID: "e1", Form: "weird", OccurredAt: time.Now()},
	}
	for _, event := range events {
		if err := consumer(context.Background(), event); err != nil {
			t.Errorf("Consumer failed for %+v: %v", event, err)
		}
	}
}
