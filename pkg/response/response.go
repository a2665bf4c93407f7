package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应结构
// 前端按 error 字段展示提示；冲突时附带 conflict 详情
type ErrorBody struct {
	Error    string      `json:"error"`
	Code     int         `json:"code"`
	Details  string      `json:"details,omitempty"`
	Conflict interface{} `json:"conflict,omitempty"`
}

// SuccessBody 写操作成功响应
type SuccessBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ── 成功响应 ──

// OK 200，直接输出数据本体（数组或对象），与前端约定一致
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Success 200 写操作成功
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessBody{Success: true, Message: message})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, ErrorBody{
		Error: message,
		Code:  code,
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, ErrorBody{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// Conflict 排课冲突（400，附带占用方）
func Conflict(c *gin.Context, code int, message string, conflict interface{}) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error:    message,
		Code:     code,
		Conflict: conflict,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "服务器内部错误")
}
