// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package logging

import "strings"

// Form submissions carry visitor PII (names, email addresses). These helpers
// mask that data before it reaches log output so operators can trace
// submissions without the logs becoming a PII store.

// SanitizeEmail masks an email address, keeping the first 2 characters of the
// local part and the full domain: "john.doe@example.com" -> "jo***@example.com".
// Anything without a local part comes back as a bare mask.
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "***"
	}
	if len(local) <= 2 {
		return "***@" + domain
	}
	return local[:2] + "***@" + domain
}

// SanitizeName masks a visitor name, keeping the first 2 characters.
// Example: "Jane Smith" -> "Ja***"
func SanitizeName(name string) string {
	if name == "" {
		return ""
	}
	if len(name) <= 2 {
		return "***"
	}
	return name[:2] + "***"
}
