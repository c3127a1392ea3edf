// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package middleware

import "net/http"

// contentSecurityPolicy is the site-wide CSP applied to every response.
// Styles and fonts may load from Google Fonts, images from any HTTPS
// origin so artwork and cover CDNs keep working; everything else is
// same-origin. Inline styles are allowed because styles cannot execute
// code; there is no inline-script exemption.
const contentSecurityPolicy = "default-src 'self'; " +
	"img-src 'self' data: https:; " +
	"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; " +
	"font-src 'self' https://fonts.gstatic.com"

// SecurityHeaders adds security headers to all responses
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Content Security Policy - applies process-wide, not per route
		w.Header().Set("Content-Security-Policy", contentSecurityPolicy)

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Referrer policy
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// HSTS (only if using HTTPS - check X-Forwarded-Proto)
		if r.Header.Get("X-Forwarded-Proto") == "https" || r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
