package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(claimOutcomes, claimLatencyMs)
}

var claimOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "claim_outcomes_total",
		Help: "Redemption attempts by final outcome.",
	},
	[]string{"outcome"}, // 'success', 'conflict', 'not_found', 'unauthorized', 'invalid', 'rate_limited', 'error'
)

var claimLatencyMs = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "claim_latency_ms",
		Help:    "Claim handler latency distribution in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
	},
)

func IncClaimOutcome(outcome string) {
	claimOutcomes.WithLabelValues(outcome).Inc()
}

func ObserveClaimLatency(ms float64) {
	claimLatencyMs.Observe(ms)
}
