// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/bandstand/internal/metrics"
)

// PrometheusMetrics records throughput, latency, and in-flight counts for
// every request passing through it. The endpoint label holds the matched
// chi route pattern rather than the raw URL path so label cardinality
// stays bounded.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		metrics.RecordHTTPRequest(r.Method, routePattern(r), strconv.Itoa(sw.code), time.Since(start))
	})
}

// routePattern reports the chi route pattern matched by the request, or
// the raw path when the request never went through a chi mux.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// statusWriter remembers the status code the wrapped handler wrote so the
// middleware can label its counters after the handler returns. Handlers
// that never call WriteHeader count as 200.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.code = code
	sw.ResponseWriter.WriteHeader(code)
}

// Hijack hands the connection to WebSocket upgrades. The upgrade response
// bypasses WriteHeader, so the status is recorded here.
func (sw *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := sw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	sw.code = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// Flush forwards streaming flushes to the underlying writer.
func (sw *statusWriter) Flush() {
	if fl, ok := sw.ResponseWriter.(http.Flusher); ok {
		fl.Flush()
	}
}
