package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"represent/internal/representatives/models"
	"represent/pkg/platform/httputil"
	"represent/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the lookup operations the handler needs.
type Service interface {
	Lookup(ctx context.Context, address string) (*models.LookupResult, error)
	LookupByCoordinates(ctx context.Context, lat, lng float64) (*models.LookupResult, error)
}

// Handler wires lookup endpoints to the representatives service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a lookup handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts lookup endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/representatives", h.HandleLookup)
	r.Get("/representatives/geo", h.HandleLookupByCoordinates)
}

// HandleLookup handles GET /representatives?address=.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req := LookupRequestFromQuery(r.URL.Query())
	if err := req.Validate(); err != nil {
		h.logger.InfoContext(ctx, "lookup rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Lookup(ctx, req.Address)
	if err != nil {
		h.logger.ErrorContext(ctx, "representative lookup failed",
			"request_id", requestID,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "representatives looked up",
		"request_id", requestID,
		"total_count", result.Metadata.TotalCount,
		"warnings", len(result.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleLookupByCoordinates handles GET /representatives/geo?lat=&lng=.
func (h *Handler) HandleLookupByCoordinates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req := CoordinatesRequestFromQuery(r.URL.Query())
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.LookupByCoordinates(ctx, req.Lat(), req.Lng())
	if err != nil {
		h.logger.ErrorContext(ctx, "coordinate lookup failed",
			"request_id", requestID,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "representatives looked up by coordinates",
		"request_id", requestID,
		"total_count", result.Metadata.TotalCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
