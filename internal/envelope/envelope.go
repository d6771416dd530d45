// Package envelope assembles the uniform success/error response wrapper.
package envelope

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/briangreenhill/swimcoach/internal/analysis"
	"github.com/briangreenhill/swimcoach/internal/swim"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is returned for every analyze request. Data is only set on
// success and Error only on failure.
type Envelope struct {
	Status string `json:"status"`
	Data   *Data  `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

type Data struct {
	SwimmerName string           `json:"swimmer_name"`
	Analysis    *swim.Analysis   `json:"analysis"`
	Timestamp   string           `json:"timestamp"`
	SessionInfo swim.SessionInfo `json:"session_info"`
}

// Success wraps a generated analysis. at is the completion instant.
func Success(rec swim.Record, a *swim.Analysis, at time.Time) Envelope {
	return Envelope{
		Status: StatusSuccess,
		Data: &Data{
			SwimmerName: rec.Name,
			Analysis:    a,
			Timestamp:   at.UTC().Format(time.RFC3339),
			SessionInfo: rec.Session,
		},
	}
}

// Failure wraps a client-facing message.
func Failure(msg string) Envelope {
	return Envelope{Status: StatusError, Error: msg}
}

// GenerationMessage names a generation failure kind. Upstream detail is only
// appended when verbose is set.
func GenerationMessage(err error, verbose bool) string {
	var msg string
	switch {
	case errors.Is(err, analysis.ErrTimeout):
		msg = "Analysis service timed out"
	case errors.Is(err, analysis.ErrExternalService):
		msg = "Analysis service unavailable"
	case errors.Is(err, analysis.ErrGenerationParse):
		msg = "Analysis service returned an invalid response"
	default:
		msg = "Internal server error"
	}
	if !verbose {
		return msg
	}
	return msg + ": " + err.Error()
}

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a Failure envelope.
func WriteError(w http.ResponseWriter, status int, msg string) {
	Write(w, status, Failure(msg))
}
