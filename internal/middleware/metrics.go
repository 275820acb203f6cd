package middleware

import (
	"strconv"
	"time"

	"jebella-admin/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records the count and latency of every HTTP request,
// labeled by method, route template and response status
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		// c.Path() is the route template, so /api/brands/:id stays one
		// label value regardless of the id
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		prometheus.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		prometheus.HttpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

		return err
	}
}
