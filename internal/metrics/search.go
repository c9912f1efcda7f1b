package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and book write Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookshelf",
			Name:      "search_requests_total",
			Help:      "Total number of book queries sent to the search index",
		},
		[]string{"status"},
	)

	SearchRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bookshelf",
			Name:      "search_request_duration_seconds",
			Help:      "Book query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SearchHits = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bookshelf",
			Name:      "search_hits",
			Help:      "Number of books matched per query",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 1000},
		},
	)

	BookWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookshelf",
			Name:      "book_writes_total",
			Help:      "Book writes by operation and engine result",
		},
		[]string{"op", "result"}, // result: CREATED / UPDATED / DELETED / NOT_FOUND / NOOP / error
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search and write metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(SearchHits)
	prometheus.MustRegister(BookWritesTotal)
	searchMetricsRegistered = true
}
