// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// handlers_ops.go - Operational Endpoints

package api

import (
	"net/http"
)

// legacyLivenessBody is the exact GET /test response. Deploy scripts
// and uptime monitors from the previous deployment grep for this
// string, so it must not change.
const legacyLivenessBody = "Flask server is running!"

// Test handles GET /test, the legacy liveness probe.
func (h *Handlers) Test(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(legacyLivenessBody))
}

// Healthz handles GET /healthz with a flat JSON status.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// apiNotFound answers unknown /api paths with flat JSON instead of the
// rendered 404 page.
func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"Not found"}`))
}
