// Package middleware throttles inbound requests per client IP.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"represent/internal/ratelimit/metrics"
	"represent/internal/ratelimit/models"
	dErrors "represent/pkg/domain-errors"
	"represent/pkg/platform/circuit"
	"represent/pkg/platform/httputil"
	"represent/pkg/requestcontext"
)

//go:generate mockgen -source=ratelimit.go -destination=mocks/mocks.go -package=mocks Limiter

// Limiter counts one request against key.
type Limiter interface {
	Allow(ctx context.Context, key string, limit models.Limit) (*models.Result, error)
}

const (
	HeaderLimit     = "X-RateLimit-Limit"
	HeaderRemaining = "X-RateLimit-Remaining"
	HeaderReset     = "X-RateLimit-Reset"
	HeaderStatus    = "X-RateLimit-Status"
	statusDegraded  = "degraded"
)

type Middleware struct {
	primary  Limiter
	fallback Limiter
	breaker  *circuit.Breaker
	limit    models.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns throttling off entirely.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithFallback sets the limiter used while the primary's breaker is open.
func WithFallback(fallback Limiter) Option {
	return func(m *Middleware) {
		m.fallback = fallback
	}
}

// WithBreaker replaces the default breaker guarding the primary limiter.
func WithBreaker(b *circuit.Breaker) Option {
	return func(m *Middleware) {
		if b != nil {
			m.breaker = b
		}
	}
}

// WithMetrics records decisions on m.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

func New(primary Limiter, limit models.Limit, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		primary: primary,
		limit:   limit,
		logger:  logger,
		breaker: circuit.New("ratelimit"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit enforces the per-IP limit. When the primary store fails the
// request is let through, and once the breaker opens the fallback store
// takes over until the primary recovers.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		key := models.NewIPKey(ip)

		result, degraded := m.check(ctx, key)
		if degraded {
			w.Header().Set(HeaderStatus, statusDegraded)
		}
		if result == nil {
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			m.logger.InfoContext(ctx, "request rate limited",
				"request_id", requestcontext.RequestID(ctx),
				"client_ip", ip,
				"retry_after", result.RetryAfter,
			)
			writeRateLimitExceeded(w, result)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// check returns a nil result when no limiter could answer.
func (m *Middleware) check(ctx context.Context, key string) (*models.Result, bool) {
	result, err := m.primary.Allow(ctx, key, m.limit)
	if err != nil {
		m.metrics.IncrementStoreErrors()
		useFallback, change := m.breaker.RecordFailure()
		if change.Opened {
			m.logger.WarnContext(ctx, "rate limit store failing, switching to in-memory fallback", "error", err)
			m.metrics.SetDegraded(true)
		}
		if !useFallback || m.fallback == nil {
			m.logger.ErrorContext(ctx, "failed to check rate limit", "error", err)
			m.metrics.IncrementDecision("error", "primary")
			return nil, m.breaker.IsOpen()
		}
		return m.fromFallback(ctx, key)
	}

	usePrimary, change := m.breaker.RecordSuccess()
	if change.Closed {
		m.logger.InfoContext(ctx, "rate limit store recovered")
		m.metrics.SetDegraded(false)
	}
	if !usePrimary && m.fallback != nil {
		return m.fromFallback(ctx, key)
	}
	m.metrics.IncrementDecision(decision(result), "primary")
	return result, false
}

func (m *Middleware) fromFallback(ctx context.Context, key string) (*models.Result, bool) {
	result, err := m.fallback.Allow(ctx, key, m.limit)
	if err != nil {
		m.logger.ErrorContext(ctx, "fallback rate limit check failed", "error", err)
		m.metrics.IncrementDecision("error", "fallback")
		return nil, true
	}
	m.metrics.IncrementDecision(decision(result), "fallback")
	return result, true
}

func decision(r *models.Result) string {
	if r.Allowed {
		return "allowed"
	}
	return "limited"
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set(HeaderLimit, strconv.Itoa(result.Limit))
	w.Header().Set(HeaderRemaining, strconv.Itoa(result.Remaining))
	w.Header().Set(HeaderReset, strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	err := dErrors.New(dErrors.CodeTooManyRequests, "Too many requests from this IP address. Please try again later.").
		WithDetails("retry after " + strconv.Itoa(result.RetryAfter) + "s")
	httputil.WriteError(w, err)
}
