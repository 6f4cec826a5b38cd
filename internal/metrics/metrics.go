package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesTotal tracks handled chat messages by conversation state.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_total",
			Help: "Total number of chat messages handled",
		},
		[]string{"state"},
	)

	// RecipeGenerations tracks recipe generation attempts by outcome.
	RecipeGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_recipe_generations_total",
			Help: "Total number of recipe generation attempts",
		},
		[]string{"status"},
	)

	// InventoryRequests tracks Grocy calls by operation and outcome.
	InventoryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocy_requests_total",
			Help: "Total number of Grocy API requests",
		},
		[]string{"operation", "status"},
	)

	// CircuitBreakerState tracks the Grocy breaker state (0=closed, 1=open, 2=half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "grocy_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit"},
	)
)
