package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	// 外部传入的 Request-ID 超过该长度时重新生成
	requestIDMaxLen = 64
)

// RequestID 请求追踪 ID 中间件
// 沿用请求头 X-Request-ID，缺失或过长时生成 UUID，并回写到响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.NewString()
		}

		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}
