package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leasematch_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leasematch_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leasematch_turns_total",
			Help: "Conversation turns processed, by terminal phase.",
		},
		[]string{"phase"},
	)

	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leasematch_extractions_total",
			Help: "Requirement-extraction calls, by outcome.",
		},
		[]string{"status"},
	)

	ExtractionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leasematch_extraction_duration_seconds",
			Help:    "Latency of successful language-model extraction calls.",
			Buckets: prometheus.DefBuckets,
		},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leasematch_searches_total",
			Help: "Candidate-listing searches, by outcome.",
		},
		[]string{"status"},
	)

	MatchScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leasematch_match_score",
			Help:    "Final match scores returned to users.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		TurnsTotal,
		ExtractionsTotal,
		ExtractionDuration,
		SearchesTotal,
		MatchScore,
	)
}
