package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	KeywordSourceErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keyword_source_errors_total",
			Help:      "Keyword search failures per data source",
		},
		[]string{"source"},
	)

	SmartSearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "smart_search_total",
			Help:      "Vector searches by outcome",
		},
		[]string{"status"}, // "success" / "embedding_error" / "query_error" / "disabled"
	)

	SearchPhaseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_phase_total",
			Help:      "Hybrid searches by terminal phase",
		},
		[]string{"phase"},
	)

	SearchResultsCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results_count",
			Help:      "Number of merged results per hybrid search",
			Buckets:   []float64{0, 1, 5, 10, 20, 30, 50, 75},
		},
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_requests_total",
			Help:      "Total number of chat completion requests",
		},
		[]string{"model", "status"}, // "success", "empty_response" or an error class
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_request_duration_seconds",
			Help:      "Chat completion request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"model"},
	)

	AnalyticsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analytics_dropped_total",
			Help:      "Analytics records dropped by reason",
		},
		[]string{"kind", "reason"}, // kind: "search" / "view"; reason: "overload" / "closed" / "error"
	)

	EmbeddingGenerationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_generation_documents_total",
			Help:      "Documents handled by embedding generation",
		},
		[]string{"document_type", "result"}, // result: "processed" / "error" / "skipped"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the search pipeline metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		KeywordSourceErrorsTotal,
		SmartSearchTotal,
		SearchPhaseTotal,
		SearchResultsCount,
		CompletionRequestsTotal,
		CompletionRequestDuration,
		AnalyticsDroppedTotal,
		EmbeddingGenerationTotal,
	)
	searchMetricsRegistered = true
}
