package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"schedopt/internal/service"
	"schedopt/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportTimetable 导出排课网格
// GET /api/export/timetable
func (h *ExportHandler) ExportTimetable(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportTimetable(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoTimeslots):
		response.NotFound(c, 20201, "暂无时间段数据，无法导出")
	default:
		response.InternalError(c)
	}
}
