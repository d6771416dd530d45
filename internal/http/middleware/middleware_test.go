package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/swimcoach/internal/envelope"
	"github.com/briangreenhill/swimcoach/internal/metrics"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAnalysisID(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	var seen string
	h := AnalysisID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = AnalysisIDFrom(r.Context())
		zerolog.Ctx(r.Context()).Info().Msg("inside")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(base.WithContext(req.Context()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	id := rec.Header().Get(AnalysisIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, seen)
	assert.Contains(t, buf.String(), `"analysis_id":"`+id+`"`)
}

func TestAnalysisID_UniquePerRequest(t *testing.T) {
	h := AnalysisID(okHandler)
	a, b := httptest.NewRecorder(), httptest.NewRecorder()
	h.ServeHTTP(a, httptest.NewRequest(http.MethodGet, "/", nil))
	h.ServeHTTP(b, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEqual(t, a.Header().Get(AnalysisIDHeader), b.Header().Get(AnalysisIDHeader))
}

func TestRateLimit(t *testing.T) {
	m := metrics.New()
	l := NewIPRateLimiter(1, 2)
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return frozen }
	h := RateLimit(l, m)(okHandler)

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001").Code)

	rec := do("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	var body envelope.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, envelope.Failure("Rate limit exceeded. Please try again later."), body)

	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000").Code, "other clients keep their own budget")

	expected := `
# HELP swimcoach_rate_limited_requests_total Requests rejected by the per-client rate limiter.
# TYPE swimcoach_rate_limited_requests_total counter
swimcoach_rate_limited_requests_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "swimcoach_rate_limited_requests_total"))
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(10 * time.Minute)
	l.Allow("b")
	l.Sweep()

	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "b")
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/health", okHandler)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	n, err := testutil.GatherAndCount(m.Registry(), "swimcoach_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://coach.example"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze-performance", nil)
	req.Header.Set("Origin", "https://coach.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://coach.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	h := hlog.NewHandler(zerolog.New(&buf))(Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze-performance", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","error":"Internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "recovered from panic")
}

func TestLogRequestID(t *testing.T) {
	var buf bytes.Buffer
	h := chimw.RequestID(hlog.NewHandler(zerolog.New(&buf))(LogRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hlog.FromRequest(r).Info().Msg("hello")
	}))))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
}
