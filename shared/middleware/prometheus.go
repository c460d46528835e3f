package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/like-mike/loja/shared/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMiddleware exposes Prometheus metrics on /metrics and records
// every other request under its route pattern.
func PrometheusMiddleware() gin.HandlerFunc {
	handler := promhttp.Handler()
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Status(http.StatusOK)
			handler.ServeHTTP(c.Writer, c.Request)
			c.Abort()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HttpRequestsTotal.WithLabelValues(metrics.ServerUI, strconv.Itoa(status), route).Inc()
		metrics.HttpRequestDurationSeconds.WithLabelValues(metrics.ServerUI, route).Observe(time.Since(start).Seconds())
		if status >= http.StatusInternalServerError {
			metrics.HttpErrorsTotal.WithLabelValues(metrics.ServerUI, route).Inc()
		}
	}
}
