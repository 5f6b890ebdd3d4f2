package resilience

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BreakerState shows the last observed state per destination.
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "classroom_circuit_breaker_state",
			Help: "Circuit breaker state per destination (0=closed, 1=open, 2=half-open)",
		},
		[]string{"destination"},
	)

	// BreakerRejectedTotal counts calls rejected because the circuit was open.
	BreakerRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classroom_circuit_breaker_rejected_total",
			Help: "Outbound calls rejected without a network attempt because the circuit was open",
		},
		[]string{"destination"},
	)

	// OutboundAttemptsTotal counts individual HTTP attempts.
	OutboundAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classroom_outbound_attempts_total",
			Help: "Outbound HTTP attempts by result (success, timeout, connection_failed, status)",
		},
		[]string{"destination", "result"},
	)

	// OutboundRetriesTotal counts retries scheduled after a failed attempt.
	OutboundRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classroom_outbound_retries_total",
			Help: "Retries scheduled for idempotent outbound calls",
		},
		[]string{"destination"},
	)

	// OutboundCallDuration observes whole calls, retries and waits included.
	OutboundCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "classroom_outbound_call_duration_seconds",
			Help:    "Duration of outbound calls including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"destination", "outcome"},
	)
)

func recordBreakerState(destination string, state State) {
	BreakerState.WithLabelValues(destination).Set(float64(state))
}

func recordRejected(destination string) {
	BreakerRejectedTotal.WithLabelValues(destination).Inc()
}

func recordAttempt(destination string, err error) {
	result := "success"
	if err != nil {
		result = attemptResult(err)
	}
	OutboundAttemptsTotal.WithLabelValues(destination, result).Inc()
}

func attemptResult(err error) string {
	callErr, ok := err.(*CallError)
	if !ok {
		return "canceled"
	}
	switch callErr.Kind {
	case CallTimeout:
		return "timeout"
	case CallConnectionFailed:
		return "connection_failed"
	default:
		return "status"
	}
}

func recordRetry(destination string) {
	OutboundRetriesTotal.WithLabelValues(destination).Inc()
}
