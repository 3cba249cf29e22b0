package metrics

import (
	"time"

	// Packages
	prometheus "github.com/prometheus/client_golang/prometheus"
)

// Tool invocation Prometheus metrics.
var (
	InvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tools",
			Name:      "invocations_total",
			Help:      "Total number of tool invocations",
		},
		[]string{"tool", "status"},
	)

	InvocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tools",
			Name:      "invocation_duration_seconds",
			Help:      "Tool invocation duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tool"},
	)
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Register adds the tool metrics to a registerer
func Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{InvocationsTotal, InvocationDuration} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveInvocation records the outcome and duration of a tool invocation
func ObserveInvocation(tool string, err error, d time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	InvocationsTotal.WithLabelValues(tool, status).Inc()
	InvocationDuration.WithLabelValues(tool).Observe(d.Seconds())
}
