package service

import (
	"go.uber.org/zap"

	"schedopt/config"
	"schedopt/internal/repository"
	"schedopt/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Timetable TimetableService
	Grid      GridService
	Export    ExportService
	Audit     AuditService
}

// NewService 创建 Service 聚合
// rdb 为 nil 时参考数据直接读库
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	var cache ReferenceCache
	if rdb != nil {
		cache = rdb
	}

	timetable := NewTimetableService(repo, cache, cfg.Redis.CacheTTL, logger)
	grid := NewGridService(timetable)

	return &Service{
		Timetable: timetable,
		Grid:      grid,
		Export:    NewExportService(grid, logger),
		Audit:     NewAuditService(repo, logger),
	}
}
