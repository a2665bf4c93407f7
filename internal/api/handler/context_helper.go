package handler

import (
	"github.com/gin-gonic/gin"
)

// 由认证中间件写入 gin.Context 的键
const (
	CtxKeySubject = "subject"
	CtxKeyRole    = "role"
)

// OperatorFromContext 取出发起调整的操作者。
// 未启用管理员认证时没有操作者，返回 "anonymous"。
func OperatorFromContext(c *gin.Context) string {
	v, exists := c.Get(CtxKeySubject)
	if !exists {
		return "anonymous"
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "anonymous"
	}
	return s
}
