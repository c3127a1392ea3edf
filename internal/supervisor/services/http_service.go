// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// defaultDrainTimeout bounds graceful shutdown when the caller passes
// no timeout of its own.
const defaultDrainTimeout = 10 * time.Second

// HTTPServer matches the *http.Server lifecycle methods the wrapper
// needs, so tests can substitute a mock listener.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService adapts an HTTP server's blocking ListenAndServe to
// suture's context-aware Serve: the listener runs in a goroutine, and
// context cancellation triggers a graceful Shutdown bounded by the
// drain timeout.
type HTTPServerService struct {
	srv          HTTPServer
	drainTimeout time.Duration
}

// NewHTTPServerService wraps server as a supervised service. The
// timeout bounds how long active connections get to drain on shutdown.
func NewHTTPServerService(server HTTPServer, drainTimeout time.Duration) *HTTPServerService {
	if drainTimeout <= 0 {
		drainTimeout = defaultDrainTimeout
	}
	return &HTTPServerService{srv: server, drainTimeout: drainTimeout}
}

// listen runs ListenAndServe in the background. The returned channel
// closes when the listener stops; ErrServerClosed is swallowed as the
// normal result of Shutdown.
func listen(srv HTTPServer) <-chan error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ch <- err
		}
	}()
	return ch
}

// Serve implements suture.Service. A listener failure returns an error
// so the supervisor restarts the server; cancellation shuts down
// gracefully and returns ctx.Err().
func (s *HTTPServerService) Serve(ctx context.Context) error {
	listenErr := listen(s.srv)

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// The serve context is already canceled; the drain needs its own.
	drainCtx, cancel := context.WithTimeout(context.Background(), s.drainTimeout)
	defer cancel()

	if err := s.srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	<-listenErr
	return ctx.Err()
}

// String implements fmt.Stringer for supervision logs.
func (s *HTTPServerService) String() string { return "http-server" }
