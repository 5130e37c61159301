package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"names_demo/internal/metrics"
)

func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(routeOf(c), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
