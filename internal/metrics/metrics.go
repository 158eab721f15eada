// Package metrics exposes Prometheus instrumentation for the pairing-code
// allocator and the surrounding request lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CodesBorrowedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pairing_codes_borrowed_total",
		Help: "Count of pairing code borrow attempts by outcome.",
	}, []string{"outcome"})

	CodeBorrowDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pairing_code_borrow_duration_seconds",
		Help:    "Latency of a single pairing code borrow call.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	PersistentStateResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairing_persistent_state_resets_total",
		Help: "Count of self-healing resets triggered by detected corruption.",
	})

	PairingRequestsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairing_requests_expired_total",
		Help: "Count of pending pairing requests the expiry worker swept.",
	})

	DirectMessagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "direct_messages_sent_total",
		Help: "Count of direct messages accepted for delivery.",
	})

	DBPoolConns = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "db_pool_connections",
		Help: "Current pgx connection pool usage by state.",
	}, []string{"state"})
)
