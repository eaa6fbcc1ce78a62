package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cleopatra/internal/metrics"
)

// Metrics records a counter and latency observation per finished request,
// labelled by route template rather than raw path to keep cardinality flat.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
