// Package analysis turns a validated swim record into a structured coaching
// analysis by way of a text-generation backend.
package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/swimcoach/internal/llm"
	"github.com/briangreenhill/swimcoach/internal/metrics"
	"github.com/briangreenhill/swimcoach/internal/prompt"
	"github.com/briangreenhill/swimcoach/internal/swim"
)

// DefaultTimeout bounds a single generation call when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options configures a Generator.
type Options struct {
	Completer llm.Completer
	Provider  string // used as a metrics label
	Model     string
	Timeout   time.Duration
	Metrics   *metrics.Metrics
}

// Generator is safe for concurrent use; it holds only read-only configuration.
type Generator struct {
	completer llm.Completer
	provider  string
	model     string
	timeout   time.Duration
	metrics   *metrics.Metrics
}

// NewGenerator returns a Generator for opts.
func NewGenerator(opts Options) *Generator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{
		completer: opts.Completer,
		provider:  opts.Provider,
		model:     opts.Model,
		timeout:   timeout,
		metrics:   opts.Metrics,
	}
}

// Generate makes exactly one generation call for rec. Failures are returned
// as *Error and are never retried.
func (g *Generator) Generate(ctx context.Context, rec swim.Record) (*swim.Analysis, error) {
	logger := zerolog.Ctx(ctx)

	user, err := prompt.Render(rec)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.completer.Complete(callCtx, llm.Request{
		Model:  g.model,
		System: prompt.System(),
		User:   user,
	})
	elapsed := time.Since(start)

	if err != nil {
		kind, outcome := ErrExternalService, metrics.OutcomeUpstream
		if llm.IsTimeout(err) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			kind, outcome = ErrTimeout, metrics.OutcomeTimeout
		}
		g.metrics.ObserveUpstream(g.provider, outcome, elapsed)
		g.metrics.ObserveAnalysis(outcome)
		logger.Error().Err(err).
			Str("failure", outcome).
			Str("model", g.model).
			Dur("elapsed", elapsed).
			Msg("generation call failed")
		return nil, &Error{Kind: kind, Err: err}
	}
	g.metrics.ObserveUpstream(g.provider, metrics.OutcomeSuccess, elapsed)

	analysis, err := Parse(text)
	if err != nil {
		g.metrics.ObserveAnalysis(metrics.OutcomeParseError)
		logger.Error().Err(err).
			Str("failure", metrics.OutcomeParseError).
			Str("raw", text).
			Msg("generation returned malformed analysis")
		return nil, &Error{Kind: ErrGenerationParse, Raw: text, Err: err}
	}

	g.metrics.ObserveAnalysis(metrics.OutcomeSuccess)
	logger.Info().Str("model", g.model).Dur("elapsed", elapsed).Msg("analysis generated")
	return analysis, nil
}
