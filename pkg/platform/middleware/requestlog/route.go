package requestlog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouteContext returns the matched chi route pattern, keeping metric label
// cardinality bounded to registered routes.
func chiRouteContext(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
