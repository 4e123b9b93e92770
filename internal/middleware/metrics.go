package middleware

import (
	"strconv"
	"time"

	"collabhub_backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware снимает счетчики и латентность HTTP-запросов.
// Путь берется из шаблона роутера, чтобы не плодить метки на каждый ID.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequests.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPLatency.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 500 {
			m.Errors.WithLabelValues("http").Inc()
		}
	}
}
