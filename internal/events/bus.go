// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package events carries accepted form submissions to side-effect
// consumers over an in-process message bus.
//
// bus.go - Submission Bus
//
// This file wires the watermill Router and the gochannel pub/sub into
// the submission bus:
//   - Automatic Ack/Nack based on consumer success/failure
//   - Panic recovery so one bad consumer cannot take down the process
//   - Exponential backoff retry for transient consumer failures
//   - Messages still failing after all retries are logged and dropped,
//     never redelivered forever
//
// The bus is strictly in-process. There is no external broker and no
// persistence; a submission's side effects are best-effort and do not
// survive a restart.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/bandstand/internal/logging"
	"github.com/tomtom215/bandstand/internal/metrics"
)

// RetryPolicy shapes the exponential backoff applied to consumers
// that return errors.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// Config holds configuration for the submission bus.
type Config struct {
	// BufferSize is the per-subscriber channel buffer.
	BufferSize int

	// CloseTimeout is how long to wait for consumers to finish when closing.
	CloseTimeout time.Duration

	// Retry governs redelivery to failing consumers.
	Retry RetryPolicy
}

// DefaultConfig returns production defaults for the bus.
func DefaultConfig() Config {
	return Config{
		BufferSize:   64,
		CloseTimeout: 30 * time.Second,
		Retry: RetryPolicy{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2.0,
		},
	}
}

// ConsumerFunc processes one submission event. Returning an error
// triggers the retry middleware; the context carries the submission's
// correlation ID and is canceled on shutdown.
type ConsumerFunc func(ctx context.Context, event SubmissionEvent) error

// Bus publishes submission events and runs their consumers.
type Bus struct {
	pubsub *gochannel.GoChannel
	router *message.Router
	evlog  *logging.EventLogger
	config Config
}

// NewBus creates the submission bus with pre-configured middleware.
// Register consumers with AddConsumer before calling Run. Signal
// handling stays with the supervisor, so no signals plugin is attached.
func NewBus(cfg Config, logger watermill.LoggerAdapter) (*Bus, error) {
	if logger == nil {
		logger = NewLoggerAdapter()
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(cfg.BufferSize),
	}, logger)

	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build submission router: %w", err)
	}

	b := &Bus{
		pubsub: pubsub,
		router: router,
		evlog:  logging.NewEventLogger(),
		config: cfg,
	}

	// Middleware in order (outer to inner):
	// 1. dropFailed - ack and log messages that exhausted their retries
	// 2. Recoverer - catch consumer panics and convert to errors
	// 3. Retry - exponential backoff for transient failures
	router.AddMiddleware(b.dropFailed)
	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      cfg.Retry.MaxRetries,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
		Multiplier:      cfg.Retry.Multiplier,
		Logger:          logger,
	}
	router.AddMiddleware(retry.Middleware)

	return b, nil
}

// Publish validates and publishes a submission event. The HTTP request ID
// travels as the message correlation ID so consumer logs line up with
// request logs.
func (b *Bus) Publish(ctx context.Context, event SubmissionEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid submission event: %w", err)
	}

	payload, err := SerializeEvent(&event)
	if err != nil {
		return fmt.Errorf("serialize submission event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	msg.Metadata.Set("form", event.Form)
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		middleware.SetCorrelationID(reqID, msg)
	}

	if err := b.pubsub.Publish(TopicSubmissions, msg); err != nil {
		return fmt.Errorf("publish submission event: %w", err)
	}
	metrics.RecordSubmissionPublished(event.Form)
	return nil
}

// AddConsumer registers a named consumer for submission events. Malformed
// payloads are acked without retry; consumer errors go through the retry
// middleware. Consumers must be registered before Run.
func (b *Bus) AddConsumer(name string, fn ConsumerFunc) {
	b.router.AddNoPublisherHandler(
		name,
		TopicSubmissions,
		b.pubsub,
		func(msg *message.Message) error {
			var event SubmissionEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.evlog.LogParseFailure(name, msg.UUID, err)
				metrics.RecordSubmissionFailed(name)
				// Malformed JSON never parses on retry.
				return nil
			}

			ctx := msg.Context()
			if corrID := middleware.MessageCorrelationID(msg); corrID != "" {
				ctx = logging.ContextWithCorrelationID(ctx, corrID)
			}

			start := time.Now()
			if err := fn(ctx, event); err != nil {
				return err
			}
			elapsed := time.Since(start)
			metrics.RecordSubmissionProcessed(name, elapsed)
			b.evlog.LogSubmissionProcessed(ctx, event.EventID, name, elapsed.Milliseconds())
			return nil
		},
	)
}

// dropFailed acks messages whose consumer failed even after all retries.
// Without it a gochannel nack redelivers the same message forever.
func (b *Bus) dropFailed(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := h(msg)
		if err == nil {
			return msgs, nil
		}

		handlerName := message.HandlerNameFromCtx(msg.Context())
		b.evlog.LogSubmissionDropped(handlerName, msg.UUID, err)
		metrics.RecordSubmissionFailed(handlerName)
		return nil, nil
	}
}

// Run starts the router and blocks until the context is canceled or
// Close is called.
func (b *Bus) Run(ctx context.Context) error {
	b.evlog.LogRouterStarted()
	defer b.evlog.LogRouterStopped()
	return b.router.Run(ctx)
}

// Running returns a channel that closes once consumers are receiving.
func (b *Bus) Running() <-chan struct{} {
	return b.router.Running()
}

// Close stops the router and the pub/sub, waiting up to CloseTimeout
// for in-flight consumers.
func (b *Bus) Close() error {
	routerErr := b.router.Close()
	pubsubErr := b.pubsub.Close()
	if routerErr != nil {
		return fmt.Errorf("close router: %w", routerErr)
	}
	if pubsubErr != nil {
		return fmt.Errorf("close pubsub: %w", pubsubErr)
	}
	return nil
}
