package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"schedopt/internal/dto"
	"schedopt/internal/model"
	"schedopt/internal/repository"
	"schedopt/pkg/metrics"
)

// ── 排课表模块业务错误 ──

var (
	ErrMissingField       = errors.New("course_code_section、newDay、newTimeslot 均不能为空")
	ErrInvalidDay         = errors.New("无效的星期代码")
	ErrInvalidTimeslot    = errors.New("时间段格式无效，应为 \"开始 - 结束\"")
	ErrAssignmentNotFound = errors.New("排课记录不存在")
	ErrScheduleConflict   = errors.New("排课冲突")
)

// ConflictError 目标时段已被同教室的其他排课占用
type ConflictError struct {
	Occupant model.FinalAssignment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s 已占用教室 %s（%s %s）",
		ErrScheduleConflict.Error(),
		e.Occupant.CourseSection, e.Occupant.RoomCode, e.Occupant.DayAbbr, e.Occupant.FinalTimeslot)
}

func (e *ConflictError) Unwrap() error { return ErrScheduleConflict }

// Info 转为响应结构
func (e *ConflictError) Info() dto.ConflictInfo {
	return toConflictInfo(&e.Occupant)
}

// 参考数据缓存键
const (
	cacheKeyDays      = "schedopt:ref:days"
	cacheKeyTimeslots = "schedopt:ref:timeslots"
)

// ReferenceCache 参考数据缓存（由 pkg/redis.Client 实现）
type ReferenceCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

// TimetableService 排课表业务接口
type TimetableService interface {
	// ListDays 单日星期列表（周一至周日）
	ListDays(ctx context.Context) ([]string, error)
	// ListTimeSlots 时间段标签列表（按 ts_key 升序）
	ListTimeSlots(ctx context.Context) ([]string, error)
	// ListAssignments 全部排课（按开始、结束时间）
	ListAssignments(ctx context.Context) ([]dto.AssignmentResponse, error)
	// UpdateAssignment 调整某班次的星期与时间段，同教室冲突时返回 *ConflictError
	UpdateAssignment(ctx context.Context, req *dto.UpdateAssignmentRequest, operator string) error
}

type timetableService struct {
	repo     *repository.Repository
	cache    ReferenceCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例；cache 可为 nil
func NewTimetableService(repo *repository.Repository, cache ReferenceCache, cacheTTL time.Duration, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ────────────────────── ListDays ──────────────────────

func (s *timetableService) ListDays(ctx context.Context) ([]string, error) {
	var days []string
	if s.cacheGet(ctx, cacheKeyDays, &days) {
		return days, nil
	}

	days, err := s.repo.DaySlot.ListSingleDays(ctx)
	if err != nil {
		s.logger.Error("查询星期列表失败", zap.Error(err))
		return nil, err
	}

	// 与存储插入顺序无关，始终按周一至周日输出
	sort.SliceStable(days, func(i, j int) bool {
		return model.WeekdayIndex(days[i]) < model.WeekdayIndex(days[j])
	})
	if days == nil {
		days = []string{}
	}

	s.cacheSet(ctx, cacheKeyDays, days)
	return days, nil
}

// ────────────────────── ListTimeSlots ──────────────────────

func (s *timetableService) ListTimeSlots(ctx context.Context) ([]string, error) {
	var labels []string
	if s.cacheGet(ctx, cacheKeyTimeslots, &labels) {
		return labels, nil
	}

	slots, err := s.repo.TimeSlot.List(ctx)
	if err != nil {
		s.logger.Error("查询时间段列表失败", zap.Error(err))
		return nil, err
	}

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Key < slots[j].Key })
	labels = make([]string, 0, len(slots))
	for _, ts := range slots {
		labels = append(labels, ts.Label)
	}

	s.cacheSet(ctx, cacheKeyTimeslots, labels)
	return labels, nil
}

// ────────────────────── ListAssignments ──────────────────────

func (s *timetableService) ListAssignments(ctx context.Context) ([]dto.AssignmentResponse, error) {
	list, err := s.repo.Assignment.List(ctx)
	if err != nil {
		s.logger.Error("查询排课列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(list))
	for i := range list {
		result = append(result, toAssignmentResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── UpdateAssignment ──────────────────────
//
// 冲突检查与写入在同一事务内完成：
//   1. 读取目标排课得到教室（调整不改变教室）
//   2. 按主键顺序锁定该教室全部排课行，可能互相冲突的调整必然同教室，因此被串行化
//   3. 加锁后重新读取目标排课
//   4. 按星期冲突集查找同教室、同时间段的其他排课
//   5. 无冲突则写入星期、时间段与拆分出的起止时间

func (s *timetableService) UpdateAssignment(ctx context.Context, req *dto.UpdateAssignmentRequest, operator string) (err error) {
	defer func() { metrics.AssignmentUpdates.WithLabelValues(updateResult(err)).Inc() }()

	section := strings.TrimSpace(req.CourseCodeSection)
	// 时间段标签仅去除首尾空白，其余字符与存储标签逐字比较并原样写入
	timeslot := strings.TrimSpace(req.NewTimeslot)
	if section == "" || strings.TrimSpace(req.NewDay) == "" || timeslot == "" {
		return ErrMissingField
	}

	day, err := model.ParseDayAbbr(req.NewDay)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDay, req.NewDay)
	}

	startTime, endTime, err := SplitTimeslot(timeslot)
	if err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	rollback := func() {
		if tx != nil {
			tx.Rollback()
		}
	}
	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	target, err := txRepo.Assignment.GetBySection(ctx, section)
	if err != nil {
		rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("查询排课失败", zap.String("section", section), zap.Error(err))
		return err
	}

	if err := txRepo.Assignment.LockRoom(ctx, target.RoomCode); err != nil {
		rollback()
		s.logger.Error("锁定教室排课失败", zap.String("room", target.RoomCode), zap.Error(err))
		return err
	}

	current, err := txRepo.Assignment.GetBySectionForUpdate(ctx, section)
	if err != nil {
		rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("查询排课失败", zap.String("section", section), zap.Error(err))
		return err
	}

	occupant, err := txRepo.Assignment.FindConflict(ctx, current.RoomCode, current.CourseSection, day.ConflictSet(), timeslot)
	switch {
	case err == nil:
		rollback()
		s.logger.Info("排课调整存在冲突",
			zap.String("section", section),
			zap.String("occupant", occupant.CourseSection),
			zap.String("room", occupant.RoomCode),
			zap.String("day", string(day)),
			zap.String("timeslot", timeslot),
		)
		return &ConflictError{Occupant: *occupant}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		rollback()
		s.logger.Error("冲突检查失败", zap.String("section", section), zap.Error(err))
		return err
	}

	// MySQL 对值未变化的行返回 0，受影响行数仅用于日志
	affected, err := txRepo.Assignment.UpdateSlot(ctx, current.CourseSection, day, timeslot, startTime, endTime)
	if err != nil {
		rollback()
		s.logger.Error("更新排课失败", zap.String("section", section), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("排课已调整",
		zap.String("section", section),
		zap.String("operator", operator),
		zap.String("from_day", string(current.DayAbbr)),
		zap.String("from_timeslot", current.FinalTimeslot),
		zap.String("to_day", string(day)),
		zap.String("to_timeslot", timeslot),
		zap.Int64("rows", affected),
	)
	return nil
}

// ── 内部辅助方法 ──

// SplitTimeslot 将 "08:00 - 09:00" 拆分为起止时间
func SplitTimeslot(label string) (string, string, error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimeslot, label)
	}
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimeslot, label)
	}
	return start, end, nil
}

func updateResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, ErrScheduleConflict):
		return metrics.ResultConflict
	case errors.Is(err, ErrAssignmentNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidDay), errors.Is(err, ErrInvalidTimeslot):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

// cacheGet 缓存读取失败时降级回源
func (s *timetableService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dst)
	if err != nil {
		s.logger.Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *timetableService) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, v, s.cacheTTL); err != nil {
		s.logger.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
}

func toAssignmentResponse(a *model.FinalAssignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		CourseSection: a.CourseSection,
		RoomCode:      a.RoomCode,
		FinalTimeslot: a.FinalTimeslot,
		DayAbbr:       string(a.DayAbbr),
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Department:    a.Department,
	}
}

func toConflictInfo(a *model.FinalAssignment) dto.ConflictInfo {
	return dto.ConflictInfo{
		CourseSection: a.CourseSection,
		RoomCode:      a.RoomCode,
		Day:           string(a.DayAbbr),
		Timeslot:      a.FinalTimeslot,
	}
}
