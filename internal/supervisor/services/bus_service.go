// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package services

import (
	"context"
	"fmt"
)

// Bus matches the run lifecycle of the submission bus.
//
// Satisfied by *events.Bus from internal/events/bus.go. The wrapper
// only needs Run, which blocks until the context is canceled.
type Bus interface {
	Run(ctx context.Context) error
}

// BusService runs the submission event bus under supervision. Run
// already blocks until cancellation, so the wrapper only translates
// its result for suture: a nil return while the context is live means
// the router died and must be restarted.
type BusService struct {
	bus Bus
}

// NewBusService wraps bus as a supervised service.
func NewBusService(bus Bus) *BusService {
	return &BusService{bus: bus}
}

// Serve implements suture.Service.
func (b *BusService) Serve(ctx context.Context) error {
	if err := b.bus.Run(ctx); err != nil {
		return fmt.Errorf("submission bus failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// String implements fmt.Stringer for supervision logs.
func (b *BusService) String() string { return "submission-bus" }
