package rest

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	articleViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "article_views_total",
			Help: "Total number of article reads by slug",
		},
	)
)

// metricsMiddleware labels requests by route template, not by raw URL.
func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Response().Status)

		httpRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request().Method, path, status).Observe(time.Since(start).Seconds())

		return nil
	}
}
