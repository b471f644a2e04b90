package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finpulse_assessments_scored_total",
			Help: "Total number of assessments scored",
		},
		[]string{"source"},
	)

	ScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finpulse_score_percentage",
			Help:    "Distribution of overall score percentages",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	PercentileLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finpulse_percentile_lookups_total",
			Help: "Total number of peer percentile lookups",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "finpulse_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "method", "status"},
	)

	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finpulse_store_operations_total",
			Help: "Total number of store operations by result",
		},
		[]string{"operation", "outcome"},
	)
)
