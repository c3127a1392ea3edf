// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

/*
Package supervisor provides process supervision for Bandstand using suture v4.

The tree organizes the two long-running concerns of the server into
separate layers so they fail and restart independently:

	RootSupervisor ("bandstand")
	├── WebSupervisor ("web-layer")
	│   └── HTTPServerService
	└── EventsSupervisor ("events-layer")
	    └── BusService

A crash in the submission bus never takes page serving down, and an
HTTP listener failure leaves queued submissions draining.

# Usage

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddWebService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddEventsService(services.NewBusService(bus))

	errCh := tree.ServeBackground(ctx)
	// ... wait for a signal ...
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Service contract

Services implement suture.Service: Serve(ctx) runs until the context is
canceled. Returning while the context is live counts as a failure and
the service is restarted, with exponential backoff once failures pass
the configured threshold. Returning after cancellation is a clean stop.

UnstoppedServiceReport names services that ignored cancellation past
the shutdown timeout, which is the first thing to check when the
process hangs on exit.
*/
package supervisor
