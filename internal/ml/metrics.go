package ml

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MLPredictionsTotal tracks classifier predictions
	MLPredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stat_prophet",
			Subsystem: "ml",
			Name:      "predictions_total",
			Help:      "Total number of classifier predictions made",
		},
		[]string{"stat_type", "cache_hit"},
	)

	// MLPredictionLatency tracks classifier scoring latency
	MLPredictionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stat_prophet",
			Subsystem: "ml",
			Name:      "prediction_latency_seconds",
			Help:      "Classifier prediction latency in seconds",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"stat_type"},
	)

	// MLPredictionErrorsTotal tracks failed predictions
	MLPredictionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stat_prophet",
			Subsystem: "ml",
			Name:      "prediction_errors_total",
			Help:      "Total number of classifier prediction failures",
		},
		[]string{"stat_type", "reason"},
	)

	// MLCacheHitRatio tracks cache hit ratio
	MLCacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stat_prophet",
			Subsystem: "ml",
			Name:      "cache_hit_ratio",
			Help:      "Classifier prediction cache hit ratio",
		},
	)

	// MLModelsLoaded tracks the per-statistic models in the active artifact
	MLModelsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stat_prophet",
			Subsystem: "ml",
			Name:      "models_loaded",
			Help:      "Number of per-statistic models in the loaded artifact",
		},
	)
)
