package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
)

// NewTraceMiddleware adds a trace ID to every request and stores a logger
// tagged with it in the request context, so handlers can log through
// logger.FromContext. Apply it early in the chain.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			log := base.With(slog.String("trace_id", shared.GetTraceID(ctx)))
			ctx = logger.WithContext(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
