package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schedopt/internal/web"
)

// WebHandler 排课网格页面
type WebHandler struct {
	authEnabled bool
}

// NewWebHandler 创建 WebHandler
func NewWebHandler(authEnabled bool) *WebHandler {
	return &WebHandler{authEnabled: authEnabled}
}

// Index 网格页面（模板由 router 通过 SetHTMLTemplate 注册）
// GET /
func (h *WebHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, web.IndexTemplate, gin.H{
		"Title":       "Course Timetable",
		"AuthEnabled": h.authEnabled,
	})
}
