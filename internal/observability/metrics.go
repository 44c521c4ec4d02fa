package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CycleRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_cycle_runs_total",
		Help: "The total number of pipeline refresh cycles",
	}, []string{"status"})

	ItemsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_items_fetched_total",
		Help: "The total number of raw items fetched from feeds",
	})

	ItemsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_items_stored_total",
		Help: "The total number of new items persisted",
	})

	ItemsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_items_pruned_total",
		Help: "The total number of items removed by retention pruning",
	})

	DigestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_digest_runs_total",
		Help: "The total number of digest synthesis attempts",
	}, []string{"status"})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsdesk_cycle_duration_seconds",
		Help:    "Duration of one full refresh cycle",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	})
)
