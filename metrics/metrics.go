package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for trigger invocations.
type Metrics struct {
	InvocationsTotal   *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		InvocationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funcapp",
			Subsystem: "trigger",
			Name:      "invocations_total",
			Help:      "Total number of trigger invocations by status.",
		}, []string{"trigger", "status"}), // status: ok, error, panic, not_found, method_not_allowed, stopped
		InvocationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "funcapp",
			Subsystem: "trigger",
			Name:      "invocation_duration_seconds",
			Help:      "Duration of trigger invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"trigger"}),
	}
}

// ObserveInvocation records one finished invocation.
func (m *Metrics) ObserveInvocation(trigger, status string, d time.Duration) {
	m.InvocationsTotal.WithLabelValues(trigger, status).Inc()
	m.InvocationDuration.WithLabelValues(trigger).Observe(d.Seconds())
}
