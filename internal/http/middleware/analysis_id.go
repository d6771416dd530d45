package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const AnalysisIDKey contextKey = "analysis_id"

// AnalysisIDHeader carries the per-request analysis id back to the client.
const AnalysisIDHeader = "X-Analysis-ID"

// AnalysisID tags the request with a fresh id, echoes it in the response
// header and adds it to the request logger.
func AnalysisID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(AnalysisIDHeader, id)

		ctx := context.WithValue(r.Context(), AnalysisIDKey, id)
		logger := zerolog.Ctx(ctx).With().Str("analysis_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(ctx)))
	})
}

// AnalysisIDFrom returns the id set by AnalysisID, or "".
func AnalysisIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(AnalysisIDKey).(string)
	return id
}
