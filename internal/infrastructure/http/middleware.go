package httptransport

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"payflow/internal/pkg/logging"
)

// WithLogger stamps a request-scoped logger into the context so downstream
// use cases log with the request's fields, and emits one access log line.
func WithLogger(logger *zap.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logger.With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		ctx := logging.ContextWithLogger(r.Context(), reqLogger)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		reqLogger.Info("http_request",
			zap.Float64("latency_seconds", time.Since(start).Seconds()),
		)
	})
}
