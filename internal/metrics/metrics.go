package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sphere_http_requests_total",
			Help: "HTTP requests by route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sphere_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "route"},
	)
)

// Completion calls
var (
	CompletionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sphere_completion_calls_total",
			Help: "Completion calls by operation, provider and outcome.",
		},
		[]string{"operation", "provider", "outcome"},
	)

	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sphere_completion_duration_seconds",
			Help:    "Completion call latency including retries and fallback.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90, 120},
		},
		[]string{"operation"},
	)

	CompletionTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sphere_completion_tokens_total",
			Help: "Tokens reported by the completion service.",
		},
		[]string{"operation", "provider"},
	)
)

// Payments
var (
	PaymentEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sphere_payment_events_total",
			Help: "Payment gateway calls and webhook events.",
		},
		[]string{"gateway", "event"},
	)
)
