// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// delta reports how much reading m changed across op. The collectors
// here live on the default registry and accumulate for the whole test
// binary, so assertions work on differences, never absolute values.
func delta(m prometheus.Collector, op func()) float64 {
	before := testutil.ToFloat64(m)
	op()
	return testutil.ToFloat64(m) - before
}

func TestRecordHTTPRequest(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		endpoint string
		status   string
		elapsed  time.Duration
	}{
		{"page GET", "GET", "/", "200", 5 * time.Millisecond},
		{"contact form redirect", "POST", "/contact", "303", 25 * time.Millisecond},
		{"chat accepted", "POST", "/api/ai-chat", "200", 3 * time.Millisecond},
		{"chat rejected", "POST", "/api/ai-chat", "400", time.Millisecond},
		{"missing page", "GET", "/no-such-page", "404", 2 * time.Millisecond},
		{"render failure", "GET", "/band", "500", 10 * time.Millisecond},
		{"rate limited", "POST", "/newsletter", "429", time.Millisecond},
		{"liveness probe", "GET", "/test", "200", 500 * time.Microsecond},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			child := HTTPRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.status)
			got := delta(child, func() {
				RecordHTTPRequest(tt.method, tt.endpoint, tt.status, tt.elapsed)
			})
			if got != 1 {
				t.Errorf("request counter moved by %v, want 1", got)
			}
		})
	}

	if n := testutil.CollectAndCount(HTTPRequestDuration); n == 0 {
		t.Error("no request duration series were recorded")
	}
}

func TestTrackActiveRequest(t *testing.T) {
	if got := delta(HTTPActiveRequests, func() { TrackActiveRequest(true) }); got != 1 {
		t.Errorf("gauge moved by %v on start, want +1", got)
	}
	if got := delta(HTTPActiveRequests, func() { TrackActiveRequest(false) }); got != -1 {
		t.Errorf("gauge moved by %v on finish, want -1", got)
	}
}

func TestActiveRequestLifecycle(t *testing.T) {
	net := delta(HTTPActiveRequests, func() {
		for i := 0; i < 10; i++ {
			TrackActiveRequest(true)
		}
		for i := 0; i < 5; i++ {
			TrackActiveRequest(false)
		}
		for i := 0; i < 3; i++ {
			TrackActiveRequest(true)
		}
		for i := 0; i < 8; i++ {
			TrackActiveRequest(false)
		}
	})
	if net != 0 {
		t.Errorf("balanced request lifecycle left the gauge offset by %v", net)
	}
}

func TestRecordPageView(t *testing.T) {
	for _, page := range []string{"home", "band", "music", "contact", "collaboration"} {
		child := PageViews.WithLabelValues(page)
		if got := delta(child, func() { RecordPageView(page, 2*time.Millisecond) }); got != 1 {
			t.Errorf("page_views_total{page=%q} moved by %v, want 1", page, got)
		}
	}

	if n := testutil.CollectAndCount(PageRenderDuration); n == 0 {
		t.Error("no render duration series were recorded")
	}
}

func TestErrorPageCounters(t *testing.T) {
	if got := delta(PageNotFoundTotal, func() {
		RecordPageNotFound()
		RecordPageNotFound()
	}); got != 2 {
		t.Errorf("404 counter moved by %v, want 2", got)
	}

	if got := delta(PageServerErrorTotal, RecordPageServerError); got != 1 {
		t.Errorf("500 counter moved by %v, want 1", got)
	}
}

func TestRecordFormSubmission(t *testing.T) {
	// The accepted flag selects the outcome label.
	cases := []struct {
		form     string
		accepted bool
		outcome  string
	}{
		{"contact", true, "accepted"},
		{"contact", false, "rejected"},
		{"newsletter", true, "accepted"},
		{"newsletter", false, "rejected"},
	}

	for _, tt := range cases {
		child := FormSubmissionsTotal.WithLabelValues(tt.form, tt.outcome)
		if got := delta(child, func() { RecordFormSubmission(tt.form, tt.accepted) }); got != 1 {
			t.Errorf("form_submissions_total{%s,%s} moved by %v, want 1", tt.form, tt.outcome, got)
		}
	}
}

func TestRecordFormValidationError(t *testing.T) {
	cases := []struct {
		form, field, kind string
	}{
		{"contact", "email", "invalid_email"},
		{"contact", "message", "too_long"},
		{"newsletter", "email", "missing_value"},
	}

	for _, tt := range cases {
		child := FormValidationErrors.WithLabelValues(tt.form, tt.field, tt.kind)
		if got := delta(child, func() { RecordFormValidationError(tt.form, tt.field, tt.kind) }); got != 1 {
			t.Errorf("validation error counter {%s,%s,%s} moved by %v, want 1", tt.form, tt.field, tt.kind, got)
		}
	}
}

func TestFlashMetrics(t *testing.T) {
	for _, category := range []string{"success", "error"} {
		child := FlashMessagesSet.WithLabelValues(category)
		if got := delta(child, func() { RecordFlashSet(category) }); got != 1 {
			t.Errorf("flash set counter {%s} moved by %v, want 1", category, got)
		}
	}

	for _, outcome := range []string{"displayed", "expired", "invalid"} {
		child := FlashMessagesPopped.WithLabelValues(outcome)
		if got := delta(child, func() { RecordFlashPop(outcome) }); got != 1 {
			t.Errorf("flash pop counter {%s} moved by %v, want 1", outcome, got)
		}
	}
}

func TestChatMetrics(t *testing.T) {
	for _, agent := range []string{"cosmic-guide", "lyric-muse", "tour-oracle", "studio-sage"} {
		child := ChatMessagesTotal.WithLabelValues(agent)
		if got := delta(child, func() { RecordChatMessage(agent) }); got != 1 {
			t.Errorf("chat counter {%s} moved by %v, want 1", agent, got)
		}
	}

	if got := delta(ChatInvalidPayloads, RecordChatInvalidPayload); got != 1 {
		t.Errorf("invalid payload counter moved by %v, want 1", got)
	}
	if got := delta(ChatUnknownAgents, RecordChatUnknownAgent); got != 1 {
		t.Errorf("unknown agent counter moved by %v, want 1", got)
	}
}

func TestWebSocketMetrics(t *testing.T) {
	net := delta(WSConnections, func() {
		TrackWSConnection(true)
		TrackWSConnection(true)
		TrackWSConnection(false)
	})
	if net != 1 {
		t.Errorf("connection gauge moved by %v, want +1", net)
	}

	if got := delta(WSMessagesSent, RecordWSMessageSent); got != 1 {
		t.Errorf("sent counter moved by %v, want 1", got)
	}
	if got := delta(WSMessagesReceived, RecordWSMessageReceived); got != 1 {
		t.Errorf("received counter moved by %v, want 1", got)
	}

	for _, kind := range []string{"connection_closed", "write_timeout", "invalid_message"} {
		child := WSErrors.WithLabelValues(kind)
		if got := delta(child, func() { RecordWSError(kind) }); got != 1 {
			t.Errorf("error counter {%s} moved by %v, want 1", kind, got)
		}
	}
}

func TestSubmissionBusMetrics(t *testing.T) {
	for _, form := range []string{"contact", "newsletter"} {
		child := SubmissionEventsPublished.WithLabelValues(form)
		if got := delta(child, func() { RecordSubmissionPublished(form) }); got != 1 {
			t.Errorf("published counter {%s} moved by %v, want 1", form, got)
		}
	}

	processed := SubmissionEventsProcessed.WithLabelValues("analytics")
	if got := delta(processed, func() { RecordSubmissionProcessed("analytics", 2*time.Millisecond) }); got != 1 {
		t.Errorf("processed counter moved by %v, want 1", got)
	}
	if n := testutil.CollectAndCount(SubmissionProcessingDuration); n != 1 {
		t.Errorf("processing duration histogram collected %d metrics, want 1", n)
	}

	failed := SubmissionEventsFailed.WithLabelValues("email_delivery")
	if got := delta(failed, func() { RecordSubmissionFailed("email_delivery") }); got != 1 {
		t.Errorf("failed counter moved by %v, want 1", got)
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	for _, endpoint := range []string{"/contact", "/newsletter", "/api/ai-chat"} {
		child := RateLimitHits.WithLabelValues(endpoint)
		if got := delta(child, func() { RecordRateLimitHit(endpoint) }); got != 1 {
			t.Errorf("rate limit counter {%s} moved by %v, want 1", endpoint, got)
		}
	}
}

func TestAppMetrics(t *testing.T) {
	SetAppInfo("1.0.0", "go1.25.4")
	if got := testutil.ToFloat64(AppInfo.WithLabelValues("1.0.0", "go1.25.4")); got != 1 {
		t.Errorf("app_info = %v, want 1", got)
	}

	SetUptime(time.Now().Add(-time.Hour))
	if got := testutil.ToFloat64(AppUptime); got < 3599 {
		t.Errorf("uptime = %v seconds, want about an hour", got)
	}
}

func TestConcurrentRecording(t *testing.T) {
	const goroutines, perGoroutine = 50, 40

	child := HTTPRequestsTotal.WithLabelValues("GET", "/concurrent", "200")
	got := delta(child, func() {
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for g := 0; g < goroutines; g++ {
			go func() {
				defer wg.Done()
				for i := 0; i < perGoroutine; i++ {
					RecordHTTPRequest("GET", "/concurrent", "200", time.Millisecond)
					TrackActiveRequest(true)
					TrackActiveRequest(false)
				}
			}()
		}
		wg.Wait()
	})

	if want := float64(goroutines * perGoroutine); got != want {
		t.Errorf("concurrent increments lost: counter moved by %v, want %v", got, want)
	}
}

func TestCollectorsDescribe(t *testing.T) {
	collectors := []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPActiveRequests,
		RateLimitHits,
		PageViews,
		PageRenderDuration,
		PageNotFoundTotal,
		PageServerErrorTotal,
		FormSubmissionsTotal,
		FormValidationErrors,
		FlashMessagesSet,
		FlashMessagesPopped,
		ChatMessagesTotal,
		ChatInvalidPayloads,
		ChatUnknownAgents,
		WSConnections,
		WSMessagesSent,
		WSMessagesReceived,
		WSErrors,
		SubmissionEventsPublished,
		SubmissionEventsProcessed,
		SubmissionEventsFailed,
		SubmissionProcessingDuration,
		AppInfo,
		AppUptime,
	}

	for i, c := range collectors {
		descs := make(chan *prometheus.Desc, 4)
		c.Describe(descs)
		close(descs)
		if len(descs) == 0 {
			t.Errorf("collector %d exposes no descriptors", i)
		}
	}
}

func TestGatherAndLint(t *testing.T) {
	RecordHTTPRequest("GET", "/test", "200", time.Millisecond)
	RecordFormSubmission("contact", true)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("gather error: %v", err)
	}
	for _, p := range problems {
		t.Logf("lint: %s: %s", p.Metric, p.Text)
	}
}

func BenchmarkRecordHTTPRequest(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		RecordHTTPRequest("GET", "/", "200", 5*time.Millisecond)
	}
}

func BenchmarkRecordFormSubmission(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		RecordFormSubmission("contact", true)
	}
}

func BenchmarkTrackActiveRequest(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		TrackActiveRequest(true)
		TrackActiveRequest(false)
	}
}
