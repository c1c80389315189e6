package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(httpRequests, httpLatencyMs)
}

var httpRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status.",
	},
	[]string{"route", "method", "status"},
)

var httpLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_latency_ms",
		Help:    "HTTP request latency distribution in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
	},
	[]string{"route", "method"},
)

func ObserveHTTPRequest(route, method string, status int, ms float64) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpLatencyMs.WithLabelValues(route, method).Observe(ms)
}
