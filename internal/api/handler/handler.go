package handler

import (
	"go.uber.org/zap"

	"schedopt/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Timetable *TimetableHandler
	Export    *ExportHandler
	Web       *WebHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, authEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		Timetable: NewTimetableHandler(svc.Timetable, svc.Grid, svc.Audit, logger),
		Export:    NewExportHandler(svc.Export),
		Web:       NewWebHandler(authEnabled),
	}
}
