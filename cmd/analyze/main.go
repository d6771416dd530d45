// Command analyze runs one performance record through the coaching pipeline
// and prints the response envelope.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/swimcoach/internal/analysis"
	"github.com/briangreenhill/swimcoach/internal/config"
	"github.com/briangreenhill/swimcoach/internal/envelope"
	"github.com/briangreenhill/swimcoach/internal/llm"
	"github.com/briangreenhill/swimcoach/internal/swim"
)

const version = "v0.1.0"

// Analyzer produces the analysis for a validated record.
type Analyzer interface {
	Generate(ctx context.Context, rec swim.Record) (*swim.Analysis, error)
}

type cli struct {
	in          io.Reader
	out         io.Writer
	newAnalyzer func(ctx context.Context) (Analyzer, error)
	now         func() time.Time
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &cli{
		in:          os.Stdin,
		out:         os.Stdout,
		newAnalyzer: configuredAnalyzer,
		now:         time.Now,
	}
	if err := c.run(logger.WithContext(ctx), os.Args[1:]); err != nil {
		logger.Fatal().Err(err).Msg("analyze failed")
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	path := "-"
	if len(args) > 0 {
		switch args[0] {
		case "help", "--help", "-h":
			fmt.Fprintln(c.out, "Usage: analyze [FILE]")
			fmt.Fprintln(c.out, "Reads a swim performance record as JSON from FILE, or stdin when FILE is - or omitted.")
			fmt.Fprintln(c.out, "Options:")
			fmt.Fprintln(c.out, "  --help, -h          Show this help message")
			fmt.Fprintln(c.out, "  --version, -v       Show the version")
			fmt.Fprintln(c.out, "Environment:")
			fmt.Fprintln(c.out, "  LLM_PROVIDER        openai (default) or gemini")
			fmt.Fprintln(c.out, "  OPENAI_API_KEY      OpenAI API key (required for openai)")
			fmt.Fprintln(c.out, "  GEMINI_API_KEY      Gemini API key (required for gemini)")
			fmt.Fprintln(c.out, "  LLM_MODEL           Model identifier (optional)")
			fmt.Fprintln(c.out, "  LLM_TIMEOUT         Upstream timeout, e.g. 30s (optional)")
			return nil
		case "version", "--version", "-v":
			fmt.Fprintln(c.out, "swimcoach analyze "+version)
			return nil
		default:
			path = args[0]
		}
		if len(args) > 1 {
			return fmt.Errorf("unexpected argument: %s", args[1])
		}
	}

	in := c.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open record: %w", err)
		}
		defer f.Close()
		in = f
	}

	env, err := c.analyze(ctx, in)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("write envelope: %w", err)
	}
	if env.Status != envelope.StatusSuccess {
		return errors.New(env.Error)
	}
	return nil
}

// analyze mirrors the HTTP handler: decode, validate, then generate once.
// Input problems are reported in the envelope, setup problems as errors.
func (c *cli) analyze(ctx context.Context, in io.Reader) (envelope.Envelope, error) {
	raw, err := swim.Decode(in)
	if err != nil {
		if errors.Is(err, swim.ErrInvalidJSON) {
			return envelope.Failure("Invalid JSON payload"), nil
		}
		return envelope.Envelope{}, fmt.Errorf("read record: %w", err)
	}

	rec, err := swim.Validate(raw)
	if err != nil {
		return envelope.Failure(err.Error()), nil
	}

	a, err := c.newAnalyzer(ctx)
	if err != nil {
		return envelope.Envelope{}, err
	}
	result, err := a.Generate(ctx, rec)
	if err != nil {
		return envelope.Failure(envelope.GenerationMessage(err, true)), nil
	}
	return envelope.Success(rec, result, c.now()), nil
}

// configuredAnalyzer builds the generator from the environment.
func configuredAnalyzer(ctx context.Context) (Analyzer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	completer, err := llm.New(ctx, llm.Options{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.BaseURL(),
	})
	if err != nil {
		return nil, err
	}
	return analysis.NewGenerator(analysis.Options{
		Completer: completer,
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		Timeout:   cfg.LLM.Timeout,
	}), nil
}
