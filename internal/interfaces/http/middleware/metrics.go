package middleware

import (
	"context"
	"time"

	"github.com/erp/orderdesk/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTP metric attribute keys
const (
	attrHTTPMethod      = "http.method"
	attrHTTPRoute       = "http.route"
	attrHTTPStatusClass = "http.status_class"
)

// httpDurationBuckets are request latency boundaries in seconds
var httpDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// httpMetrics holds the HTTP server instruments
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter,
		"http_server_request_total",
		"Total number of HTTP requests",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter,
		"http_server_request_duration_seconds",
		"HTTP request latency distribution in seconds",
		"s",
		httpDurationBuckets...,
	)
	if err != nil {
		return nil, err
	}

	responseSize, err := telemetry.NewHistogram(meter,
		"http_server_response_size_bytes",
		"HTTP response body size distribution in bytes",
		"By",
		100, 500, 1000, 5000, 10000, 50000, 100000,
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics returns a middleware recording request count, latency,
// response size and in-flight requests on meter. Routes are labelled by
// their pattern, not the raw path. A nil meter or an instrument error yields
// a pass-through middleware.
func HTTPMetrics(meter metric.Meter) gin.HandlerFunc {
	if meter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	metrics, err := newHTTPMetrics(meter)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		metrics.activeRequests.Add(ctx, 1)
		c.Next()
		metrics.activeRequests.Add(ctx, -1)

		recordHTTPMetrics(ctx, metrics, c.Request.Method, routePattern(c), c.Writer.Status(), time.Since(start), c.Writer.Size())
	}
}

func recordHTTPMetrics(
	ctx context.Context,
	metrics *httpMetrics,
	method, route string,
	status int,
	duration time.Duration,
	responseSize int,
) {
	base := []attribute.KeyValue{
		attribute.String(attrHTTPMethod, method),
		attribute.String(attrHTTPRoute, route),
	}
	metrics.requestTotal.Inc(ctx, append(base, attribute.String(attrHTTPStatusClass, StatusClass(status)))...)
	metrics.requestDuration.Record(ctx, duration.Seconds(), base...)
	if responseSize > 0 {
		metrics.responseSize.Record(ctx, float64(responseSize), base...)
	}
}

// routePattern returns e.g. "/api/v1/ledger/requests/:id", or "unmatched"
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// StatusClass groups a status code into 2xx, 3xx, 4xx, 5xx or other
func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "other"
	}
}
