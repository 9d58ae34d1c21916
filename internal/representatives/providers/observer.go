package providers

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"represent/pkg/requestcontext"
)

const tracerName = "represent/providers"

// OutcomeSuccess labels external calls that returned usable data.
const OutcomeSuccess = "success"

// CallRecorder receives one sample per external call.
type CallRecorder interface {
	ObserveExternalCall(provider, operation, outcome string, d time.Duration)
}

// Observer emits exactly one log record, one metric sample and one span per
// outbound provider call.
type Observer struct {
	logger  *slog.Logger
	metrics CallRecorder
	tracer  trace.Tracer
}

// NewObserver builds an Observer. metrics may be nil.
func NewObserver(logger *slog.Logger, metrics CallRecorder) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
	}
}

// Call is one in-flight external call started by Observer.Start.
type Call struct {
	o         *Observer
	ctx       context.Context
	span      trace.Span
	provider  string
	operation string
	start     time.Time
}

// Start opens a span for the call and starts its timer.
func (o *Observer) Start(ctx context.Context, provider, operation string, attrs ...attribute.KeyValue) (context.Context, *Call) {
	ctx, span := o.tracer.Start(ctx, provider+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs,
			attribute.String("provider", provider),
			attribute.String("operation", operation),
		)...),
	)
	return ctx, &Call{o: o, ctx: ctx, span: span, provider: provider, operation: operation, start: time.Now()}
}

// End closes the call. status is the upstream HTTP status (0 if none) and
// err the categorized outcome.
func (c *Call) End(status int, err error) {
	elapsed := time.Since(c.start)
	outcome := OutcomeSuccess
	if err != nil {
		outcome = string(GetCategory(err))
	}

	if status > 0 {
		c.span.SetAttributes(attribute.Int("http.status_code", status))
	}
	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, outcome)
	} else {
		c.span.SetStatus(codes.Ok, "")
	}
	c.span.End()

	if c.o.metrics != nil {
		c.o.metrics.ObserveExternalCall(c.provider, c.operation, outcome, elapsed)
	}

	args := []any{
		"provider", c.provider,
		"operation", c.operation,
		"outcome", outcome,
		"status_code", status,
		"duration_ms", elapsed.Milliseconds(),
		"request_id", requestcontext.RequestID(c.ctx),
	}
	if err != nil {
		c.o.logger.WarnContext(c.ctx, "external call failed", append(args, "error", err)...)
		return
	}
	c.o.logger.InfoContext(c.ctx, "external call completed", args...)
}
