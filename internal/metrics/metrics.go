package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Vote Processing Metrics
var (
	// VotesTotal tracks votes processed by result
	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "votes_total",
			Help: "Total votes processed by result (cast/duplicate/invalid/error)",
		},
		[]string{"result"},
	)

	// VoteBroadcastSkipped tracks post-vote broadcasts skipped because the
	// poll reload failed
	VoteBroadcastSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vote_broadcast_skipped_total",
			Help: "Post-vote broadcasts skipped because the poll could not be reloaded",
		},
	)
)

// WebSocket Metrics
var (
	// WebSocketConnectionsCurrent tracks current active WebSocket sessions
	WebSocketConnectionsCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_current",
			Help: "Current number of connected WebSocket sessions",
		},
	)

	// WebSocketConnectionsTotal tracks WebSocket connection attempts by result
	WebSocketConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_connections_total",
			Help: "Total WebSocket connection attempts by result (success/error)",
		},
		[]string{"result"},
	)

	// BroadcastDeliveries tracks messages handed to subscriber send buffers
	BroadcastDeliveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_deliveries_total",
			Help: "Total broadcast messages handed to subscriber send buffers",
		},
	)

	// BroadcastSlowClientsEvicted tracks slow subscribers dropped during fan-out
	BroadcastSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_slow_clients_evicted_total",
			Help: "Total slow WebSocket subscribers evicted due to full send buffer",
		},
	)
)

// HTTP Error Metrics
// Note: http_errors_total{type} is provided by the internal/errors package.
