package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAnalysis(t *testing.T) {
	m := New()
	m.ObserveAnalysis(OutcomeSuccess)
	m.ObserveAnalysis(OutcomeSuccess)
	m.ObserveAnalysis(OutcomeParseError)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues(OutcomeParseError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.analyses.WithLabelValues(OutcomeTimeout)))
}

func TestObserveHTTP(t *testing.T) {
	m := New()
	m.ObserveHTTP("/health", http.MethodGet, 200, 5*time.Millisecond)
	m.ObserveRateLimited()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/health", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveUpstream("openai", OutcomeSuccess, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "swimcoach_upstream_request_duration_seconds")
	assert.Contains(t, body, "go_goroutines")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis(OutcomeSuccess)
		m.ObserveUpstream("openai", OutcomeSuccess, time.Second)
		m.ObserveHTTP("/", "GET", 200, time.Second)
		m.ObserveRateLimited()
	})
	assert.Nil(t, m.Registry())
}
