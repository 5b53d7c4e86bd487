package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/micropost/internal/metrics"
)

// Metrics records request counts and latency by route template so ids in
// the URL do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := metrics.StatusClass(c.Writer.Status())
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
	}
}
