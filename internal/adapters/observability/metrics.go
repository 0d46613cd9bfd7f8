package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "appstore", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "appstore", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	FeedPages = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "appstore", Name: "feed_pages_total", Help: "Fetched feed pages by outcome."},
		[]string{"region", "outcome"}, // outcome: ok|empty|parse_failed
	)
	ExportedReviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "appstore", Name: "exported_reviews_total", Help: "Reviews written to CSV."},
		[]string{"app"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(ExternalRequests, ExternalLatency, FeedPages, ExportedReviews)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// status 0 means the request never got a response.
func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObservePage(region, outcome string) {
	if region == "" {
		region = "default"
	}
	FeedPages.WithLabelValues(region, outcome).Inc()
}

func ObserveExport(app string, n int) {
	ExportedReviews.WithLabelValues(app).Add(float64(n))
}
