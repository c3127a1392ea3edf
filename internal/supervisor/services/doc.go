// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package services wraps the server's long-running components as
// suture services.
//
// Each wrapper adapts one component's lifecycle to the Serve(ctx)
// contract and names it for supervision logs:
//
//   - HTTPServerService: net/http server with graceful shutdown
//   - BusService: the submission event bus
//
// The wrappers depend on small local interfaces rather than the
// concrete types, so tests can drive them with fakes.
package services
