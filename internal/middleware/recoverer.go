// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/tomtom215/bandstand/internal/logging"
)

// Recoverer creates panic-recovery middleware. A recovered page request is
// answered with the rendered 500 page via renderError; API requests get a
// flat JSON body instead so clients never receive HTML.
func Recoverer(renderError http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}

					logging.Error().
						Interface("panic", rvr).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Bytes("stack", debug.Stack()).
						Msg("Recovered from panic in handler")

					if strings.HasPrefix(r.URL.Path, "/api/") {
						w.Header().Set("Content-Type", "application/json; charset=utf-8")
						w.WriteHeader(http.StatusInternalServerError)
						_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
						return
					}

					renderError(w, r)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
