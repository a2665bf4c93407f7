package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schedopt/internal/dto"
	"schedopt/internal/service"
	"schedopt/pkg/response"
)

// TimetableHandler 排课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
	gridSvc      service.GridService
	auditSvc     service.AuditService
	logger       *zap.Logger
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(
	timetableSvc service.TimetableService,
	gridSvc service.GridService,
	auditSvc service.AuditService,
	logger *zap.Logger,
) *TimetableHandler {
	return &TimetableHandler{
		timetableSvc: timetableSvc,
		gridSvc:      gridSvc,
		auditSvc:     auditSvc,
		logger:       logger,
	}
}

// GetDays 星期列头
// GET /api/timetable
func (h *TimetableHandler) GetDays(c *gin.Context) {
	days, err := h.timetableSvc.ListDays(c.Request.Context())
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.OK(c, days)
}

// GetTimeSlots 时间段行头
// GET /api/timeslots
func (h *TimetableHandler) GetTimeSlots(c *gin.Context) {
	slots, err := h.timetableSvc.ListTimeSlots(c.Request.Context())
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.OK(c, slots)
}

// GetAssignments 全部排课
// GET /api/final-assignments
func (h *TimetableHandler) GetAssignments(c *gin.Context) {
	list, err := h.timetableSvc.ListAssignments(c.Request.Context())
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.OK(c, list)
}

// UpdateAssignment 拖拽调整排课
// POST /api/update
func (h *TimetableHandler) UpdateAssignment(c *gin.Context) {
	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 20001, "参数校验失败", err.Error())
		return
	}

	if err := h.timetableSvc.UpdateAssignment(c.Request.Context(), &req, OperatorFromContext(c)); err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.Success(c, fmt.Sprintf("%s 已调整至 %s %s", req.CourseCodeSection, req.NewDay, req.NewTimeslot))
}

// GetGrid 排课网格（时间段 × 星期）
// GET /api/grid?search=xxx
func (h *TimetableHandler) GetGrid(c *gin.Context) {
	var req dto.GridRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 20001, "参数校验失败")
		return
	}

	grid, err := h.gridSvc.Build(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.OK(c, grid)
}

// GetConflicts 当前数据中已存在的重复占用
// GET /api/conflicts
func (h *TimetableHandler) GetConflicts(c *gin.Context) {
	report, err := h.auditSvc.FindConflicts(c.Request.Context())
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.OK(c, report)
}

// handleTimetableError 统一处理排课表模块业务错误
func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		info := conflict.Info()
		response.Conflict(c, 20101,
			fmt.Sprintf("排课冲突：%s 已在 %s %s 占用教室 %s", info.CourseSection, info.Day, info.Timeslot, info.RoomCode),
			info)
	case errors.Is(err, service.ErrMissingField):
		response.BadRequest(c, 20001, err.Error())
	case errors.Is(err, service.ErrInvalidDay):
		response.BadRequest(c, 20002, err.Error())
	case errors.Is(err, service.ErrInvalidTimeslot):
		response.BadRequest(c, 20003, err.Error())
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 20004, "排课记录不存在")
	default:
		h.logger.Error("排课接口内部错误", zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c)
	}
}
