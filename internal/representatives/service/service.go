package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"represent/internal/representatives/metrics"
	"represent/internal/representatives/models"
	"represent/internal/representatives/ocd"
	"represent/internal/representatives/ports"
	"represent/internal/representatives/providers"
	dErrors "represent/pkg/domain-errors"
	"represent/pkg/requestcontext"
)

// DefaultLookupTimeout bounds a lookup when no timeout is configured.
const DefaultLookupTimeout = 15 * time.Second

const outcomeOK = "ok"

// Service resolves addresses into representatives grouped by government level.
type Service struct {
	resolver   ports.DivisionResolver
	aggregator *Aggregator
	geo        ports.CoordinateFetcher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	timeout    time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLookupTimeout bounds each lookup end to end. Non-positive values are ignored.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCoordinateFetcher enables LookupByCoordinates.
func WithCoordinateFetcher(geo ports.CoordinateFetcher) Option {
	return func(s *Service) {
		s.geo = geo
	}
}

// New builds a Service. logger and m may be nil.
func New(resolver ports.DivisionResolver, fetcher ports.RepresentativeFetcher, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		resolver:   resolver,
		aggregator: NewAggregator(fetcher, logger, m),
		logger:     logger,
		metrics:    m,
		tracer:     otel.Tracer("represent/representatives"),
		timeout:    DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup resolves address into divisions, fetches every division's officials
// concurrently and merges them. address must already be validated.
//
// Errors are domain errors: ADDRESS_NOT_FOUND, RATE_LIMIT_EXCEEDED,
// EXTERNAL_SERVICE_ERROR or INTERNAL_ERROR.
func (s *Service) Lookup(ctx context.Context, address string) (*models.LookupResult, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "representatives.lookup")
	defer span.End()

	result, err := s.lookup(ctx, address)
	return s.finish(ctx, span, start, result, err)
}

func (s *Service) lookup(ctx context.Context, address string) (*models.LookupResult, error) {
	resolution, err := s.resolver.Resolve(ctx, address)
	if err != nil {
		return nil, err
	}
	if resolution == nil || len(resolution.Jurisdictions) == 0 {
		return nil, providers.NewProviderError(providers.ErrorNotFound, providers.ProviderCivic, "no divisions found for address", nil)
	}
	s.flagUncategorized(ctx, resolution.Jurisdictions)

	result, err := s.aggregator.Aggregate(ctx, resolution.Jurisdictions)
	if err != nil {
		return nil, err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, ctx.Err()
	}

	result.Metadata.Address = resolution.NormalizedAddress
	if result.Metadata.Address == "" {
		result.Metadata.Address = strings.TrimSpace(address)
	}
	return result, nil
}

// LookupByCoordinates returns officials for a point using the legislative
// provider's geographic search. Results carry no warnings.
func (s *Service) LookupByCoordinates(ctx context.Context, lat, lng float64) (*models.LookupResult, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "representatives.lookup_by_coordinates",
		trace.WithAttributes(attribute.Float64("lat", lat), attribute.Float64("lng", lng)))
	defer span.End()

	if s.geo == nil {
		return s.finish(ctx, span, start, nil, dErrors.New(dErrors.CodeInternal, "coordinate lookup is not configured"))
	}

	reps, err := s.geo.FetchByCoordinates(ctx, lat, lng)
	if err != nil {
		return s.finish(ctx, span, start, nil, err)
	}

	result := &models.LookupResult{
		Federal:  []models.Representative{},
		State:    []models.Representative{},
		Local:    []models.Representative{},
		Warnings: []string{},
	}
	seen := make(map[string]struct{}, len(reps))
	for _, rep := range reps {
		if _, dup := seen[rep.ID]; dup || rep.ID == "" {
			continue
		}
		seen[rep.ID] = struct{}{}
		result.Add(rep)
	}
	result.Metadata.TotalCount = result.Total()
	result.Metadata.GovernmentLevels = result.LevelsPresent()
	return s.finish(ctx, span, start, result, nil)
}

// finish stamps timing, records telemetry and translates err.
func (s *Service) finish(ctx context.Context, span trace.Span, start time.Time, result *models.LookupResult, err error) (*models.LookupResult, error) {
	elapsed := time.Since(start)
	s.metrics.ObserveLookupLatency(elapsed)

	if err != nil {
		derr := translate(err)
		s.metrics.IncrementLookupOutcome(string(derr.Code))
		span.RecordError(err)
		span.SetStatus(codes.Error, string(derr.Code))
		s.logger.WarnContext(ctx, "lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"code", derr.Code,
			"error", err,
			"duration_ms", elapsed.Milliseconds(),
		)
		return nil, derr
	}

	result.Metadata.ResponseTimeMs = elapsed.Milliseconds()
	s.metrics.IncrementLookupOutcome(outcomeOK)
	span.SetAttributes(
		attribute.Int("representatives.total", result.Metadata.TotalCount),
		attribute.Int("representatives.warnings", len(result.Warnings)),
	)
	s.logger.InfoContext(ctx, "lookup completed",
		"request_id", requestcontext.RequestID(ctx),
		"total_count", result.Metadata.TotalCount,
		"division_count", result.Metadata.DivisionCount,
		"warnings", len(result.Warnings),
		"duration_ms", elapsed.Milliseconds(),
	)
	return result, nil
}

// flagUncategorized surfaces identifiers that fell through to the local
// default so the rule table can be reviewed.
func (s *Service) flagUncategorized(ctx context.Context, jurisdictions []models.Jurisdiction) {
	for _, j := range jurisdictions {
		if c := ocd.Classify(j.Identifier); !c.Confident {
			s.metrics.IncrementUncategorized()
			s.logger.WarnContext(ctx, "division identifier matched no categorization rule; defaulted to local",
				"jurisdiction", j.Identifier,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
}

// translate maps any lookup failure onto the public error contract.
func translate(err error) *dErrors.Error {
	if de, ok := dErrors.As(err); ok {
		return de
	}

	var pe *providers.ProviderError
	if errors.As(err, &pe) {
		switch pe.Category {
		case providers.ErrorNotFound:
			return dErrors.Wrap(err, dErrors.CodeAddressNotFound, "No divisions found for the provided address")
		case providers.ErrorRateLimited:
			return dErrors.Wrap(err, dErrors.CodeRateLimitExceeded, "Upstream data provider rate limit exceeded. Please try again later.")
		default:
			return dErrors.Wrap(err, dErrors.CodeExternalServiceError, "An upstream data provider is unavailable").
				WithDetails(string(pe.Category))
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeExternalServiceError, "The lookup timed out before upstream providers answered").
			WithDetails(string(providers.ErrorTimeout))
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "An unexpected error occurred")
}
