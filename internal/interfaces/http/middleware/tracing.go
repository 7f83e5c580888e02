// Package middleware provides the gin middleware chain of the order desk API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
	// Options are passed through to otelgin, e.g. a tracer provider in tests.
	Options []otelgin.Option
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "orderdesk",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig returns the otelgin server span middleware. The span is
// named after the route pattern, e.g. "GET /api/v1/ledger/requests/:id".
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName, cfg.Options...)
}

// TracingAttributes adds request_id and session_id to the current span and
// marks it as an error when the response status is 4xx or 5xx.
// Place it after Tracing, RequestID and Session in the chain.
func TracingAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if id := GetRequestID(c); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}
		if id := c.GetString(SessionIDKey); id != "" {
			span.SetAttributes(attribute.String("session_id", id))
		}

		c.Next()

		markSpanStatus(span, c.Writer.Status())
	}
}

func markSpanStatus(span trace.Span, status int) {
	if status < http.StatusBadRequest {
		return
	}
	msg := "Client Error"
	switch {
	case status >= http.StatusInternalServerError:
		msg = "Server Error"
	case status == http.StatusNotFound:
		msg = "Not Found"
	case status == http.StatusTooManyRequests:
		msg = "Rate Limited"
	}
	span.SetStatus(codes.Error, msg)
	span.SetAttributes(attribute.Int("http.status_code", status))
}
