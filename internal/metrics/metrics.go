package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReportsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_submitted_total",
			Help: "Reports successfully submitted by citizens",
		},
	)

	ReportsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_resolved_total",
			Help: "Reports resolved by admins",
		},
	)
)
