// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReconcilePasses tracks total reconciliation passes.
	ReconcilePasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_reconcile_passes_total",
			Help: "Total reconciliation passes run",
		},
	)

	// ReconcileFailures tracks reconciliation passes that aborted with an error.
	ReconcileFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_reconcile_failures_total",
			Help: "Total reconciliation passes that failed",
		},
	)

	// ReconcileEffects tracks selection effects applied, by effect kind.
	ReconcileEffects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_reconcile_effects_total",
			Help: "Total selection effects applied",
		},
		[]string{"effect"},
	)

	// SSEConnectionsActive tracks active selection event stream connections.
	SSEConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_sse_connections_active",
			Help: "Number of active SSE connections",
		},
	)
)

// IncrementSSEConnections increments the active SSE connection count.
func IncrementSSEConnections() {
	SSEConnectionsActive.Inc()
}

// DecrementSSEConnections decrements the active SSE connection count.
func DecrementSSEConnections() {
	SSEConnectionsActive.Dec()
}
