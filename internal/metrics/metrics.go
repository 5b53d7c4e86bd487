package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micropost_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "micropost_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "micropost_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micropost_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"path"},
	)

	AuthResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micropost_auth_resolutions_total",
			Help: "Total number of request identity resolutions by outcome",
		},
		[]string{"outcome"},
	)

	UsersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "micropost_users_total",
			Help: "Number of registered users",
		},
	)

	PostsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "micropost_posts_total",
			Help: "Number of micro posts",
		},
	)
)

// StatusClass buckets a status code as 2xx, 3xx, 4xx or 5xx.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
