// Package llm wraps the text-generation backends behind a single Completer.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	ErrMissingAPIKey   = errors.New("llm: api key not configured")
	ErrUnknownProvider = errors.New("llm: unknown provider")
	ErrEmptyCompletion = errors.New("llm: completion has no content")
)

// Request is one system+user exchange.
type Request struct {
	Model  string
	System string
	User   string
}

// Completer returns the raw text the model produced for a request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Options configures a backend built by New.
type Options struct {
	Provider   string
	APIKey     string
	BaseURL    string // optional endpoint override
	HTTPClient *http.Client
}

// New returns the Completer for opts.Provider.
func New(ctx context.Context, opts Options) (Completer, error) {
	switch opts.Provider {
	case ProviderOpenAI, "":
		return NewOpenAI(opts.APIKey, opts.BaseURL, opts.HTTPClient)
	case ProviderGemini:
		return NewGemini(ctx, opts.APIKey, opts.BaseURL, opts.HTTPClient)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
}

// IsTimeout reports whether err came from a deadline expiring, either on the
// context or inside the transport.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

func defaultHTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 2 * time.Minute}
}
