// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

/*
Package metrics instruments Bandstand with Prometheus.

Counters, histograms, and gauges cover the HTTP layer, page renders,
form submissions, flash cookies, the AI chat stub and its WebSocket
stream, and the submission event bus. Everything registers on the
default registry via promauto and is served in text format at /metrics.

# Series

HTTP:
  - http_requests_total (counter; method, endpoint, status_code)
  - http_request_duration_seconds (histogram; method, endpoint)
  - http_active_requests (gauge)
  - rate_limit_hits_total (counter; endpoint)

Pages:
  - page_views_total (counter; page)
  - page_render_duration_seconds (histogram)
  - page_not_found_total, page_server_error_total (counters)

Forms:
  - form_submissions_total (counter; form, outcome)
  - form_validation_errors_total (counter; form, field, kind)

Flash:
  - flash_messages_set_total (counter; category)
  - flash_messages_popped_total (counter; outcome)

Chat:
  - chat_messages_total (counter; agent)
  - chat_invalid_payloads_total, chat_unknown_agents_total (counters)
  - websocket_connections (gauge), websocket_messages_sent_total,
    websocket_messages_received_total, websocket_errors_total

Submission bus:
  - submission_events_published_total (counter; form)
  - submission_events_processed_total, submission_events_failed_total
    (counters; consumer)
  - submission_processing_duration_seconds (histogram)

Process:
  - app_info (gauge; version, go_version)
  - app_uptime_seconds (gauge)

# Cardinality

Endpoint labels use the route pattern, never the raw URL; form and
agent labels come from fixed registries. Series counts stay bounded no
matter what clients send.

Record* helpers wrap the raw collectors so call sites stay one line:

	metrics.RecordHTTPRequest("POST", "/contact", "303", time.Since(start))
	metrics.RecordFormSubmission("contact", true)

All of it is safe for concurrent use; the Prometheus client locks
internally.
*/
package metrics
