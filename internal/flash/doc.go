// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

/*
Package flash implements one-shot flash messages backed by a signed cookie.

A flash is set during a POST (for example "Message sent successfully!")
and rendered by exactly the next GET of the same client, then never again.
The message lives in the client's own cookie as an HS256-signed JWT, so
there is no server-side session storage and messages cannot cross between
clients. Tampered, forged, or expired cookies are silently dropped.

# Usage

	store, err := flash.NewStore([]byte(cfg.Security.SecretKey),
	    flash.WithSecure(cfg.IsProduction()))
	if err != nil {
	    return err
	}

	// In the POST handler, after a successful submission:
	store.Set(w, flash.Success("Message sent successfully!"))

	// In the page renderer:
	if msg, ok := store.Pop(w, r); ok {
	    data.Flash = &msg
	}

# Key Derivation

The signing key is derived from the configured secret with HKDF-SHA256
rather than used directly. Signatures made with the raw secret do not
verify against the store, and other subsystems deriving keys from the
same secret cannot forge flashes.

# At-Most-Once Delivery

Pop expires the cookie in the same response that carries the message, so
a reload after the flash was shown renders a clean page. The cookie is
expired even when validation fails; a deliberately corrupted cookie is
cleared instead of being retried forever.

See internal/api for the handlers that set flashes and internal/pages
for the template that renders them.
*/
package flash
