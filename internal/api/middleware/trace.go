package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlowerence/Learn-Better/internal/api/shared"
	"github.com/cmlowerence/Learn-Better/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and a logger
// carrying it. This middleware should be applied early in the chain so that
// every later handler logs with the same trace ID.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context(), r.Header.Get(shared.TraceIDHeader))
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithContext(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
