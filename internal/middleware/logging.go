package middleware

import (
	"strconv"
	"time"

	"event-handlers-api/internal/observability/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs every request once it completes, at a level chosen by status code
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		fields := logrus.Fields{
			"request_id":  c.GetString(RequestIDKey),
			"method":      c.Request.Method,
			"path":        path,
			"status_code": c.Writer.Status(),
			"latency_ms":  float64(time.Since(start).Nanoseconds()) / 1000000,
			"client_ip":   c.ClientIP(),
		}
		if raw != "" {
			fields["query"] = raw
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.WithFields(fields).Error("Server error")
		case c.Writer.Status() >= 400:
			logger.WithFields(fields).Warn("Client error")
		default:
			logger.WithFields(fields).Info("Request completed")
		}
	}
}

// Metrics records request latency by route template
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestLatency.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
