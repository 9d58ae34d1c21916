// Package httpapi assembles the public HTTP surface: middleware chain,
// lookup routes, health and metrics.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"represent/internal/platform/metrics"
	rlmw "represent/internal/ratelimit/middleware"
	"represent/internal/representatives/handler"
	"represent/pkg/platform/httputil"
	"represent/pkg/platform/middleware/metadata"
	"represent/pkg/platform/middleware/requestid"
	"represent/pkg/platform/middleware/requestlog"
	"represent/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

// HealthChecker reports whether an optional backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps are the collaborators the router mounts. RateLimit and Health may be nil.
type Deps struct {
	Logger      *slog.Logger
	Lookup      *handler.Handler
	RateLimit   *rlmw.Middleware
	HTTPMetrics *metrics.HTTP
	Gatherer    prometheus.Gatherer
	Health      HealthChecker
	CORSOrigins []string
}

// NewRouter wires the middleware chain and every public endpoint.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(requestlog.Middleware(d.Logger, d.HTTPMetrics))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(d.CORSOrigins)))

	r.Get("/health", healthHandler(d.Health, d.Logger))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))
	}

	r.Group(func(r chi.Router) {
		if d.RateLimit != nil {
			r.Use(d.RateLimit.RateLimit)
		}
		d.Lookup.Register(r)
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestid.Header},
		ExposedHeaders: []string{
			requestid.Header,
			rlmw.HeaderLimit,
			rlmw.HeaderRemaining,
			rlmw.HeaderReset,
			rlmw.HeaderStatus,
			"Retry-After",
		},
		MaxAge: 300,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// healthHandler answers "ok", or "degraded" when the optional dependency is
// unreachable. Lookups keep working either way, so both are 200.
func healthHandler(checker HealthChecker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := checker.Health(ctx); err != nil {
				logger.WarnContext(ctx, "health check degraded", "error", err)
				status = "degraded"
			}
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: status})
	}
}
