package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/like-mike/loja/shared/metrics"
)

// PrometheusMiddleware records every request under its route pattern.
func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		code := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			} else {
				code = fiber.StatusInternalServerError
			}
		}
		status := strconv.Itoa(code)

		metrics.HttpRequestsTotal.WithLabelValues(metrics.ServerAPI, status, route).Inc()
		metrics.HttpRequestDurationSeconds.WithLabelValues(metrics.ServerAPI, route).Observe(time.Since(start).Seconds())
		if code >= fiber.StatusInternalServerError {
			metrics.HttpErrorsTotal.WithLabelValues(metrics.ServerAPI, route).Inc()
		}
		return err
	}
}
