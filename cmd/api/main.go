// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/swimcoach/internal/analysis"
	"github.com/briangreenhill/swimcoach/internal/config"
	appmw "github.com/briangreenhill/swimcoach/internal/http/middleware"
	"github.com/briangreenhill/swimcoach/internal/http/routes"
	"github.com/briangreenhill/swimcoach/internal/llm"
	"github.com/briangreenhill/swimcoach/internal/metrics"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func run(logger zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Generation backend
	completer, err := llm.New(ctx, llm.Options{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.BaseURL(),
	})
	if err != nil {
		return err
	}

	m := metrics.New()
	gen := analysis.NewGenerator(analysis.Options{
		Completer: completer,
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		Timeout:   cfg.LLM.Timeout,
		Metrics:   m,
	})

	var limiter *appmw.IPRateLimiter
	if cfg.RateLimitEnabled() {
		limiter = appmw.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.Run(ctx.Done(), time.Minute)
	}

	// Router / server
	s := routes.New(routes.ServerOptions{
		Analyzer: gen,
		Cfg:      *cfg,
		Logger:   logger,
		Metrics:  m,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.LLM.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Str("provider", cfg.LLM.Provider).
			Str("model", cfg.LLM.Model).
			Msg("starting api")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
