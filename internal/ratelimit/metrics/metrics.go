package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks inbound throttling decisions.
type Metrics struct {
	// Decisions by result ("allowed", "limited", "error") and store ("primary", "fallback")
	Decisions *prometheus.CounterVec

	// 1 while the breaker serves from the in-memory fallback
	Degraded prometheus.Gauge

	StoreErrors prometheus.Counter
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "represent_ratelimit_decisions_total",
			Help: "Inbound rate limit decisions by result and store",
		}, []string{"result", "store"}),
		Degraded: f.NewGauge(prometheus.GaugeOpts{
			Name: "represent_ratelimit_degraded",
			Help: "Whether rate limiting currently runs on the in-memory fallback",
		}),
		StoreErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "represent_ratelimit_store_errors_total",
			Help: "Errors returned by the primary rate limit store",
		}),
	}
}

func (m *Metrics) IncrementDecision(result, store string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(result, store).Inc()
}

func (m *Metrics) SetDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.Degraded.Set(1)
		return
	}
	m.Degraded.Set(0)
}

func (m *Metrics) IncrementStoreErrors() {
	if m == nil {
		return
	}
	m.StoreErrors.Inc()
}
