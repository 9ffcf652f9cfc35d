package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careerday/interview-scheduler-api/internal/service"
)

// Metrics records per-request counters and latency. The route template
// is preferred over the raw path so path parameters do not explode the
// label cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
