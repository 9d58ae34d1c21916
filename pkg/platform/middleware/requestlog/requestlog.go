// Package requestlog writes one structured access log record per request.
package requestlog

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"represent/pkg/platform/middleware/metadata"
	"represent/pkg/requestcontext"
)

// Observer receives the outcome of every request, typically a metrics sink.
type Observer interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Middleware logs method, route, status and latency. obs may be nil.
func Middleware(logger *slog.Logger, obs Observer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			ctx := r.Context()
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			elapsed := time.Since(start)

			if obs != nil {
				obs.ObserveRequest(r.Method, route, status, elapsed)
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "http request",
				"request_id", requestcontext.RequestID(ctx),
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"client_ip", requestcontext.ClientIP(ctx),
				"client", metadata.ClientKind(requestcontext.UserAgent(ctx)),
				"duration_ms", elapsed.Milliseconds(),
			)
		})
	}
}

func routePattern(r *http.Request) string {
	if rc := chiRouteContext(r); rc != "" {
		return rc
	}
	return r.URL.Path
}
