package llm

import "github.com/prometheus/client_golang/prometheus"

var (
	// llmCalls counts model calls by operation and outcome
	// (ok, empty, timeout, error, not_configured, bad_output).
	llmCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of language model calls.",
		},
		[]string{"operation", "outcome"},
	)

	// llmLat records model call latency in seconds by operation.
	llmLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of language model calls in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(llmCalls, llmLat)
}

// observe counts one finished call of op with its outcome.
func observe(op, outcome string) {
	llmCalls.WithLabelValues(op, outcome).Inc()
}
