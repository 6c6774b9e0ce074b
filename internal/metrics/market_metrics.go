package metrics

import "github.com/prometheus/client_golang/prometheus"

// Market-side counter vectors
var (
	EntityResolutionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_resolution_total",
		Help:      "Total number of entity resolutions by kind and matching stage",
	}, []string{"kind", "stage"})

	MarketSignalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "market_signals_total",
		Help:      "Total number of market analyses by lean",
	}, []string{"lean"})
)

// Market-side histograms
var (
	MarketBookCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "market_book_count",
		Help:      "Number of books quoting a matched player prop",
		Buckets:   []float64{1, 2, 3, 5, 8, 12, 20},
	})
)

// RecordEntityResolution records the stage an entity lookup ended in.
func RecordEntityResolution(kind, stage string) {
	if stage == "" {
		return
	}
	EntityResolutionTotal.WithLabelValues(kind, stage).Inc()
}

// RecordMarket records a market summary that produced quotes.
func RecordMarket(lean string, books int) {
	MarketSignalsTotal.WithLabelValues(lean).Inc()
	MarketBookCount.Observe(float64(books))
}
