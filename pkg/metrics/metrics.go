// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// UpstreamDuration tracks outbound calls to the geocoding, forecast,
	// search and model providers.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Upstream provider call duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider", "status"},
	)

	// LLMTokensTotal tracks total model tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// ItinerariesTotal tracks itineraries generated per model provider.
	ItinerariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itineraries_generated_total",
			Help: "Total itineraries generated",
		},
		[]string{"provider"},
	)

	// IntentTotal tracks orchestrator decision outcomes.
	IntentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_intent_total",
			Help: "Chat orchestrator outcomes",
		},
		[]string{"outcome"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordUpstream records an outbound provider call.
func RecordUpstream(provider, status string, duration float64) {
	UpstreamDuration.WithLabelValues(provider, status).Observe(duration)
}

// RecordLLMUsage records token usage for a completed model call.
func RecordLLMUsage(model string, tokensIn, tokensOut int) {
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}
