// Package metrics declares the Prometheus collectors of the custody service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SequenceAllocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sequence_allocations_total",
		Help: "Order sequence numbers issued, by the tier that issued them",
	}, []string{"tier"})

	SequenceRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sequence_transactional_retries_total",
		Help: "Transactional counter attempts that failed with contention and were retried",
	})

	SequenceExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sequence_allocations_exhausted_total",
		Help: "Allocations that failed after every tier",
	})

	SequenceAllocationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sequence_allocation_latency_seconds",
		Help:    "Latency of order sequence allocation",
		Buckets: prometheus.DefBuckets,
	})

	LedgerMovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_movements_total",
		Help: "Stock movements committed to the ledger",
	}, []string{"type"})

	LedgerRepairsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_pending_repairs_total",
		Help: "Pending movements resolved by the repair pass",
	}, []string{"outcome"})

	IllegalStateRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custody_illegal_state_rejections_total",
		Help: "Operations rejected because the record was already acted on",
	}, []string{"operation"})

	EventsPublishFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "domain_events_publish_failed_total",
		Help: "Domain events that could not be published after commit",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
