package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"team-management.backend/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route template.
// Unmatched paths are grouped under "unmatched" to keep label cardinality bounded.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeTemplate(c)
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// routeTemplate is the matched route with any trailing slash removed, so
// "/api/teammembers/" and "/api/teammembers" share one template.
func routeTemplate(c *gin.Context) string {
	route := c.FullPath()
	if len(route) > 1 {
		route = strings.TrimSuffix(route, "/")
	}
	return route
}
