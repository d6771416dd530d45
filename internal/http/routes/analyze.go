package routes

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/swimcoach/internal/envelope"
	"github.com/briangreenhill/swimcoach/internal/swim"
)

// handleAnalyze validates the record, asks the analyzer for exactly one
// analysis and wraps the result in the response envelope.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	raw, err := swim.Decode(http.MaxBytesReader(w, r.Body, s.MaxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			envelope.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		case errors.Is(err, swim.ErrInvalidJSON):
			logger.Warn().Err(err).Msg("rejected malformed body")
			envelope.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		default:
			logger.Error().Err(err).Msg("read request body")
			envelope.WriteError(w, http.StatusBadRequest, "Could not read request body")
		}
		return
	}

	rec, err := swim.Validate(raw)
	if err != nil {
		logger.Warn().Err(err).Msg("rejected performance record")
		envelope.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.Analyzer.Generate(r.Context(), rec)
	if err != nil {
		envelope.WriteError(w, http.StatusInternalServerError, envelope.GenerationMessage(err, !s.Production))
		return
	}

	envelope.Write(w, http.StatusOK, envelope.Success(rec, result, s.Now()))
}
