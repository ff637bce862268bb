package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine Prometheus metrics for the two query modes and the reasoning
// provider.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vendorlens",
			Name:      "searches_total",
			Help:      "Total number of document searches",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vendorlens",
			Name:      "search_duration_seconds",
			Help:      "Document search duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vendorlens",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation scorings",
		},
		[]string{"status"},
	)

	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vendorlens",
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation scoring duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	ReasonerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vendorlens",
			Name:      "reasoner_requests_total",
			Help:      "Total number of reasoning provider calls",
		},
		[]string{"provider", "status"},
	)

	ReasonerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vendorlens",
			Name:      "reasoner_request_duration_seconds",
			Help:      "Reasoning provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)
)

// RegisterEngineMetrics registers the engine metrics explicitly (no init()).
func RegisterEngineMetrics() {
	prometheus.MustRegister(
		SearchesTotal,
		SearchDuration,
		RecommendationsTotal,
		RecommendDuration,
		ReasonerRequestsTotal,
		ReasonerRequestDuration,
	)
}
