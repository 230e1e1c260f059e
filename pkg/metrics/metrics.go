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
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
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

	// ChatTurnsTotal tracks chat turns by the pipeline path that answered
	// them: allergy, direct, llm, llm_error, llm_unavailable.
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Chat turns by resolution path",
		},
		[]string{"restaurant_id", "path"},
	)

	// ActionsTotal tracks suggested-action clicks by kind.
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_actions_total",
			Help: "Suggested-action clicks by kind",
		},
		[]string{"restaurant_id", "action"},
	)

	// GatewayDuration tracks assistant-gateway call duration.
	GatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_gateway_duration_seconds",
			Help:    "Assistant gateway call duration",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"model", "status"},
	)

	// GatewayTokensTotal tracks tokens through the assistant gateway.
	GatewayTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_gateway_tokens_total",
			Help: "Tokens processed by the assistant gateway",
		},
		[]string{"model", "direction"},
	)

	// OrdersTotal tracks finalized orders.
	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Orders finalized through the assistant",
		},
		[]string{"restaurant_id"},
	)

	// UpsellOffersTotal tracks checkout upsell offers presented.
	UpsellOffersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upsell_offers_total",
			Help: "Upsell offers presented before checkout",
		},
		[]string{"restaurant_id"},
	)

	// SessionsActive tracks open chat sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions_active",
			Help: "Number of open chat sessions",
		},
	)
)

// RecordRequest records one HTTP request observation.
func RecordRequest(method, path, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, path, status).Inc()
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSec)
}

// RecordGatewayCall records one assistant-gateway call.
func RecordGatewayCall(model, status string, durationSec float64, tokensIn, tokensOut int) {
	GatewayDuration.WithLabelValues(model, status).Observe(durationSec)
	GatewayTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	GatewayTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}
