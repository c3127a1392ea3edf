// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Every collector registers on the default registry via promauto and
// is served by the middleware package's /metrics handler. Coverage:
// HTTP latency and throughput, page rendering, form submissions and
// their validation outcomes, the flash message lifecycle, AI chat
// traffic, the WebSocket stream, and the submission event bus.

var (
	// HTTP Endpoint Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for page latency
		},
		[]string{"method", "endpoint"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_hits_total",
			Help: "Requests refused by a rate limiter",
		},
		[]string{"endpoint"},
	)

	// Page Metrics
	PageViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_views_total",
			Help: "Total number of page renders by page name",
		},
		[]string{"page"},
	)

	PageRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "page_render_duration_seconds",
			Help:    "Template render duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25}, // Rendering is in-memory
		},
		[]string{"page"},
	)

	PageNotFoundTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "page_not_found_total",
			Help: "Total number of 404 responses",
		},
	)

	PageServerErrorTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "page_server_error_total",
			Help: "Total number of 500 responses",
		},
	)

	// Form Metrics
	FormSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of form submissions",
		},
		[]string{"form", "outcome"}, // outcome: "accepted", "rejected"
	)

	FormValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_validation_errors_total",
			Help: "Total number of field validation failures",
		},
		[]string{"form", "field", "kind"}, // kind: missing_value, invalid_email, too_short, too_long
	)

	// Flash Message Metrics
	FlashMessagesSet = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flash_messages_set_total",
			Help: "Total number of flash messages set",
		},
		[]string{"category"}, // "success", "error"
	)

	FlashMessagesPopped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flash_messages_popped_total",
			Help: "Total number of flash cookie pops by outcome",
		},
		[]string{"outcome"}, // "displayed", "expired", "invalid"
	)

	// AI Chat Metrics
	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of AI chat messages handled",
		},
		[]string{"agent"},
	)

	ChatInvalidPayloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_invalid_payloads_total",
			Help: "Total number of chat requests rejected for malformed payloads",
		},
	)

	ChatUnknownAgents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_unknown_agents_total",
			Help: "Total number of chat requests naming an unknown agent",
		},
	)

	// Chat stream
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Open chat stream connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Stream messages written to clients",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Stream messages read from clients",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Stream failures by error type",
		},
		[]string{"error_type"},
	)

	// Submission Bus Metrics
	SubmissionEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_events_published_total",
			Help: "Total number of submission events published to the bus",
		},
		[]string{"form"},
	)

	SubmissionEventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_events_processed_total",
			Help: "Total number of submission events successfully processed",
		},
		[]string{"consumer"},
	)

	SubmissionEventsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_events_failed_total",
			Help: "Total number of submission events whose handler returned an error",
		},
		[]string{"consumer"},
	)

	SubmissionProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "submission_processing_duration_seconds",
			Help:    "Duration of submission event handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Process-level
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Build metadata for the running server",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Seconds since the server started",
		},
	)
)

// RecordHTTPRequest records an HTTP request metric
func RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active HTTP requests
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rate limit rejection
func RecordRateLimitHit(endpoint string) {
	RateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordPageView records a page render
func RecordPageView(page string, renderDuration time.Duration) {
	PageViews.WithLabelValues(page).Inc()
	PageRenderDuration.WithLabelValues(page).Observe(renderDuration.Seconds())
}

// RecordPageNotFound records a 404 response
func RecordPageNotFound() {
	PageNotFoundTotal.Inc()
}

// RecordPageServerError records a 500 response
func RecordPageServerError() {
	PageServerErrorTotal.Inc()
}

// RecordFormSubmission records a form submission outcome
func RecordFormSubmission(form string, accepted bool) {
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	FormSubmissionsTotal.WithLabelValues(form, outcome).Inc()
}

// RecordFormValidationError records a single field validation failure
func RecordFormValidationError(form, field, kind string) {
	FormValidationErrors.WithLabelValues(form, field, kind).Inc()
}

// RecordFlashSet records a flash message being set
func RecordFlashSet(category string) {
	FlashMessagesSet.WithLabelValues(category).Inc()
}

// RecordFlashPop records a flash cookie pop and its outcome
func RecordFlashPop(outcome string) {
	FlashMessagesPopped.WithLabelValues(outcome).Inc()
}

// RecordChatMessage records a handled chat message
func RecordChatMessage(agent string) {
	ChatMessagesTotal.WithLabelValues(agent).Inc()
}

// RecordChatInvalidPayload records a rejected chat payload
func RecordChatInvalidPayload() {
	ChatInvalidPayloads.Inc()
}

// RecordChatUnknownAgent records a chat request for an unknown agent
func RecordChatUnknownAgent() {
	ChatUnknownAgents.Inc()
}

// TrackWSConnection tracks WebSocket connection lifecycle
func TrackWSConnection(inc bool) {
	if inc {
		WSConnections.Inc()
	} else {
		WSConnections.Dec()
	}
}

// RecordWSMessageSent records a WebSocket message sent to a client
func RecordWSMessageSent() {
	WSMessagesSent.Inc()
}

// RecordWSMessageReceived records a WebSocket message received from a client
func RecordWSMessageReceived() {
	WSMessagesReceived.Inc()
}

// RecordWSError records a WebSocket error
func RecordWSError(errorType string) {
	WSErrors.WithLabelValues(errorType).Inc()
}

// RecordSubmissionPublished records a submission event publish
func RecordSubmissionPublished(form string) {
	SubmissionEventsPublished.WithLabelValues(form).Inc()
}

// RecordSubmissionProcessed records a successfully handled submission event
func RecordSubmissionProcessed(consumer string, duration time.Duration) {
	SubmissionEventsProcessed.WithLabelValues(consumer).Inc()
	SubmissionProcessingDuration.Observe(duration.Seconds())
}

// RecordSubmissionFailed records a submission event handler failure
func RecordSubmissionFailed(consumer string) {
	SubmissionEventsFailed.WithLabelValues(consumer).Inc()
}

// SetAppInfo sets the application version gauge
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// SetUptime updates the uptime gauge
func SetUptime(startTime time.Time) {
	AppUptime.Set(time.Since(startTime).Seconds())
}
