// Package metrics exposes the Prometheus instrumentation shared by the
// adapters and page controllers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AdapterCalls counts outbound external-service calls by adapter and outcome.
	AdapterCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wayfarer_adapter_calls_total",
		Help: "External service adapter calls by adapter name and status.",
	}, []string{"adapter", "status"})

	// SearchesSaved counts rows appended to the search history table.
	SearchesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wayfarer_searches_saved_total",
		Help: "Search history rows appended.",
	})

	// LoginAttempts counts sign-in attempts by outcome.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wayfarer_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
)

// ObserveAdapter records one adapter call outcome.
func ObserveAdapter(adapter string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	AdapterCalls.WithLabelValues(adapter, status).Inc()
}
