// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds the restart and shutdown knobs for the tree. Zero
// values take suture's production defaults.
type TreeConfig struct {
	// FailureThreshold is the failure count that triggers backoff.
	FailureThreshold float64

	// FailureDecay is how fast the failure count decays, in seconds.
	FailureDecay float64

	// FailureBackoff is the restart delay once the threshold is hit.
	FailureBackoff time.Duration

	// ShutdownTimeout bounds how long a service may take to stop.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's built-in defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// withDefaults fills any zero knob from DefaultTreeConfig.
func (c TreeConfig) withDefaults() TreeConfig {
	def := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = def.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = def.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = def.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	return c
}

// specFor translates the knobs into a suture spec. Pass a nil hook for
// child supervisors; suture copies the root's hook onto hookless
// children when they are added.
func specFor(c TreeConfig, hook suture.EventHook) suture.Spec {
	return suture.Spec{
		EventHook:        hook,
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// Tree is the supervisor hierarchy for the server: a root with one
// child per concern, so the HTTP listener and the submission bus fail
// and restart independently.
type Tree struct {
	root   *suture.Supervisor
	web    *suture.Supervisor
	events *suture.Supervisor
	logger *slog.Logger
	config TreeConfig
}

// NewTree builds the supervisor hierarchy. Supervision events flow
// into logger through the sutureslog hook.
func NewTree(logger *slog.Logger, config TreeConfig) (*Tree, error) {
	config = config.withDefaults()

	// sutureslog exposes no constructor besides the pointer-receiver
	// MustHook.
	eventHook := (&sutureslog.Handler{Logger: logger}).MustHook()

	root := suture.New("bandstand", specFor(config, eventHook))
	web := suture.New("web-layer", specFor(config, nil))
	events := suture.New("events-layer", specFor(config, nil))

	root.Add(web)
	root.Add(events)

	return &Tree{
		root:   root,
		web:    web,
		events: events,
		logger: logger,
		config: config,
	}, nil
}

// Root returns the root supervisor for direct access if needed.
func (t *Tree) Root() *suture.Supervisor { return t.root }

// AddWebService adds a service to the web layer. Use this for the
// HTTP server.
func (t *Tree) AddWebService(svc suture.Service) suture.ServiceToken { return t.web.Add(svc) }

// AddEventsService adds a service to the events layer. Use this for
// the submission bus.
func (t *Tree) AddEventsService(svc suture.Service) suture.ServiceToken { return t.events.Add(svc) }

// Serve starts the tree and blocks until the context is canceled.
func (t *Tree) Serve(ctx context.Context) error { return t.root.Serve(ctx) }

// ServeBackground starts the tree in a background goroutine. The
// returned channel receives the error (or nil) when the tree stops.
func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that failed to stop within the
// shutdown timeout.
func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
