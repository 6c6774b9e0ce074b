// Package metrics provides the centralized Prometheus registry for the analysis engine.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stat_prophet"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total number of completed prop analyses",
	}, []string{"stat_type", "recommendation"})
	InsufficientDataTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insufficient_data_total",
		Help:      "Total number of analyses with no qualifying game records",
	}, []string{"stat_type"})
	MalformedRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "malformed_requests_total",
		Help:      "Total number of rejected analysis requests by field",
	}, []string{"field"})
	ProbabilitySourceTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "probability_source_total",
		Help:      "Total number of probabilities by producing model",
	}, []string{"source"})
	ExcludedGamesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "excluded_games_total",
		Help:      "Total number of game log entries dropped during normalization",
	}, []string{"reason"})
)

// Histogram metrics
var (
	ConfidenceScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "confidence_score",
		Help:      "Synthesized confidence scores",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95},
	})
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of a single analysis in seconds",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysesTotal)
		registry.MustRegister(InsufficientDataTotal)
		registry.MustRegister(MalformedRequestsTotal)
		registry.MustRegister(ProbabilitySourceTotal)
		registry.MustRegister(ExcludedGamesTotal)

		registry.MustRegister(ConfidenceScore)
		registry.MustRegister(AnalysisDuration)

		registry.MustRegister(EntityResolutionTotal)
		registry.MustRegister(MarketSignalsTotal)
		registry.MustRegister(MarketBookCount)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Gatherer combines the engine registry with the default one, where the
// classifier metrics live.
func Gatherer() prometheus.Gatherer {
	return prometheus.Gatherers{GetRegistry(), prometheus.DefaultGatherer}
}

// WriteTextfile writes every metric in the text exposition format, for
// pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Gatherer())
}

// RecordAnalysis records a completed analysis.
func RecordAnalysis(statType, recommendation string, confidence, durationSeconds float64) {
	AnalysesTotal.WithLabelValues(statType, recommendation).Inc()
	ConfidenceScore.Observe(confidence)
	AnalysisDuration.Observe(durationSeconds)
}

// RecordInsufficientData records an analysis without qualifying games.
func RecordInsufficientData(statType string, durationSeconds float64) {
	InsufficientDataTotal.WithLabelValues(statType).Inc()
	AnalysisDuration.Observe(durationSeconds)
}

// RecordMalformedRequest records a rejected request.
func RecordMalformedRequest(field string) {
	MalformedRequestsTotal.WithLabelValues(field).Inc()
}

// RecordProbabilitySource records which model produced a probability.
func RecordProbabilitySource(source string) {
	ProbabilitySourceTotal.WithLabelValues(source).Inc()
}

// RecordExcludedGames adds normalization exclusions by reason.
func RecordExcludedGames(byReason map[string]int) {
	for reason, n := range byReason {
		ExcludedGamesTotal.WithLabelValues(reason).Add(float64(n))
	}
}
