package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"schedopt/pkg/metrics"
)

// Metrics 按路由模板统计请求数与耗时
// 未匹配的路径统一记为 "unmatched"
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
