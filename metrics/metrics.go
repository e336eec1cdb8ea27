package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxreward_invocations_total",
			Help: "Total number of distributor operations by outcome",
		},
		[]string{"op", "status"},
	)

	InvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taxreward_invocation_duration_seconds",
			Help:    "Duration of distributor operations",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		},
		[]string{"op"},
	)

	SwapAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxreward_swap_attempts_total",
			Help: "Total number of exchange route attempts",
		},
		[]string{"route", "status"},
	)

	SwapProceedsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taxreward_swap_proceeds_total",
			Help: "Settlement currency measured into reward vaults by committed swaps",
		},
	)

	RewardsPaidTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taxreward_rewards_paid_total",
			Help: "Settlement currency paid to holders by committed settlements",
		},
	)
)
