// internal/api/middleware.go
package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"acord-intake/internal/common/logger"
	"acord-intake/internal/common/metrics"
	"acord-intake/internal/common/observability"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, honoring one supplied by the
// caller. The id rides on the gin context and the response header so log
// lines and error envelopes can be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestId", requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// RequestLogger emits one structured line per request after it completes.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	reqLog := log.WithFields(map[string]interface{}{"component": "http"})
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  c.GetString("requestId"),
			"clientIp":   c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case c.Writer.Status() >= 500:
			reqLog.Error("request completed", fields)
		case c.Writer.Status() >= 400:
			reqLog.Warn("request completed", fields)
		default:
			reqLog.Info("request completed", fields)
		}
	}
}

// RequestMetrics records request counts and latencies per route template.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RequestTracing opens a span per request and propagates it through the
// request context so downstream calls attach to the same trace. The
// span's outcome also feeds the OpenTelemetry request instruments.
func RequestTracing(obs *observability.Observability) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := obs.StartSpan(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		obs.RecordRequestProcessed(ctx, status)
		obs.RecordRequestDuration(ctx, time.Since(start), status)
	}
}
