package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider request metrics, labelled by upstream provider and outcome.
var (
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curiocity_provider_requests_total",
			Help: "Outbound requests per upstream data provider.",
		},
		[]string{"provider", "outcome"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curiocity_provider_request_duration_seconds",
			Help:    "Latency of outbound provider requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	AggregationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curiocity_aggregations_total",
			Help: "Location aggregation runs by cache outcome.",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curiocity_http_request_duration_seconds",
			Help:    "Latency of inbound HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "status"},
	)
)
