package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orgdex",
			Name:      "searches_total",
			Help:      "Total number of searches by mode",
		},
		[]string{"mode", "status"},
	)

	SearchResultCount = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orgdex",
			Name:      "search_result_count",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	EmbeddingsRefreshedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orgdex",
			Name:      "embeddings_refreshed_total",
			Help:      "Organizations processed by the embedding refresh, by outcome",
		},
		[]string{"status"}, // "updated" / "error"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchResultCount)
	prometheus.MustRegister(EmbeddingsRefreshedTotal)
	searchMetricsRegistered = true
}
