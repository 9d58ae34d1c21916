package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for representative lookups.
type Metrics struct {
	// Lookup outcomes by result code ("ok", "ADDRESS_NOT_FOUND", ...)
	LookupOutcome *prometheus.CounterVec

	// End-to-end lookup latency including resolve and fan-out
	LookupLatency prometheus.Histogram

	// Outbound provider calls by provider, operation and outcome
	ExternalCalls *prometheus.CounterVec

	// Outbound provider call latency by provider and operation
	ExternalCallLatency *prometheus.HistogramVec

	// Per-jurisdiction fetch outcomes by level: "data", "empty", "failed"
	JurisdictionFetches *prometheus.CounterVec

	// Identifiers that matched no categorization rule
	UncategorizedIdentifiers prometheus.Counter
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LookupOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "represent_lookups_total",
			Help: "Total representative lookups by outcome code",
		}, []string{"outcome"}),

		LookupLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "represent_lookup_duration_seconds",
			Help:    "Duration of a full lookup including division resolution and representative fan-out",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),

		ExternalCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "represent_external_calls_total",
			Help: "Outbound provider calls by provider, operation and outcome",
		}, []string{"provider", "operation", "outcome"}),

		ExternalCallLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "represent_external_call_duration_seconds",
			Help:    "Duration of outbound provider calls",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "operation"}),

		JurisdictionFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "represent_jurisdiction_fetches_total",
			Help: "Per-jurisdiction fetch results by government level and result",
		}, []string{"level", "result"}),

		UncategorizedIdentifiers: f.NewCounter(prometheus.CounterOpts{
			Name: "represent_uncategorized_identifiers_total",
			Help: "Division identifiers that matched no categorization rule and defaulted to local",
		}),
	}
}

// IncrementLookupOutcome records how a lookup ended.
func (m *Metrics) IncrementLookupOutcome(outcome string) {
	if m != nil {
		m.LookupOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveLookupLatency records the total lookup duration.
func (m *Metrics) ObserveLookupLatency(d time.Duration) {
	if m != nil {
		m.LookupLatency.Observe(d.Seconds())
	}
}

// ObserveExternalCall records one outbound provider call.
func (m *Metrics) ObserveExternalCall(provider, operation, outcome string, d time.Duration) {
	if m != nil {
		m.ExternalCalls.WithLabelValues(provider, operation, outcome).Inc()
		m.ExternalCallLatency.WithLabelValues(provider, operation).Observe(d.Seconds())
	}
}

// IncrementJurisdictionFetch records the result of fetching one jurisdiction.
func (m *Metrics) IncrementJurisdictionFetch(level, result string) {
	if m != nil {
		m.JurisdictionFetches.WithLabelValues(level, result).Inc()
	}
}

// IncrementUncategorized records an identifier that fell through to the default level.
func (m *Metrics) IncrementUncategorized() {
	if m != nil {
		m.UncategorizedIdentifiers.Inc()
	}
}
