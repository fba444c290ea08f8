package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"hotel-nepal/observability"
)

// Metrics records request count and latency by route template, so ids in
// paths do not create new series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.ObserveHTTP(routeOf(c), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
