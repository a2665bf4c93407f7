package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"schedopt/pkg/jwt"
	"schedopt/pkg/response"
)

// AdminAuth 管理员认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Token，要求 role=admin
// jwtMgr 为 nil 表示未启用认证，直接放行
func AdminAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtMgr == nil {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			msg := "Token 无效"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token 已过期"
			}
			response.Unauthorized(c, 10002, msg)
			c.Abort()
			return
		}

		if claims.Role != jwt.RoleAdmin {
			response.Forbidden(c, 10003, "无权限访问")
			c.Abort()
			return
		}

		// 将管理员信息注入上下文
		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)

		c.Next()
	}
}
