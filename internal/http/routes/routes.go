package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/swimcoach/internal/config"
	"github.com/briangreenhill/swimcoach/internal/envelope"
	appmw "github.com/briangreenhill/swimcoach/internal/http/middleware"
	"github.com/briangreenhill/swimcoach/internal/metrics"
	"github.com/briangreenhill/swimcoach/internal/swim"
)

// Analyzer produces the coaching analysis for a validated record.
type Analyzer interface {
	Generate(ctx context.Context, rec swim.Record) (*swim.Analysis, error)
}

type Server struct {
	Router     *chi.Mux
	Analyzer   Analyzer
	Production bool // hide error detail from clients
	MaxBody    int64
	Now        func() time.Time
}

type ServerOptions struct {
	Analyzer Analyzer
	Cfg      config.Config
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Limiter  *appmw.IPRateLimiter // nil disables rate limiting
	Now      func() time.Time
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if opts.Cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(appmw.LogRequestID)
	r.Use(hlog.RemoteAddrHandler("remote_addr"))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(appmw.Metrics(opts.Metrics))
	r.Use(appmw.Recover)
	r.Use(appmw.CORS(opts.Cfg.AllowedOrigins))

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	maxBody := opts.Cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	s := &Server{Router: r, Analyzer: opts.Analyzer, Production: opts.Cfg.IsProduction(), MaxBody: maxBody, Now: now}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		envelope.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		envelope.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	r.Group(func(ar chi.Router) {
		if opts.Limiter != nil {
			ar.Use(appmw.RateLimit(opts.Limiter, opts.Metrics))
		}
		ar.Use(appmw.AnalysisID)
		ar.Post("/api/analyze-performance", s.handleAnalyze)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	envelope.Write(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}
