// Package jobs 后台定时任务
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"schedopt/internal/service"
	"schedopt/pkg/metrics"
)

// auditTimeout 单次巡检超时
const auditTimeout = 2 * time.Minute

// ConflictAudit 按 cron 周期巡检教室重复占用
type ConflictAudit struct {
	audit  service.AuditService
	logger *zap.Logger
	cron   *cron.Cron
}

// NewConflictAudit 创建巡检任务
func NewConflictAudit(audit service.AuditService, logger *zap.Logger) *ConflictAudit {
	return &ConflictAudit{
		audit:  audit,
		logger: logger,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start 注册并启动任务；schedule 为 cron 表达式或 "@every 10m"
func (j *ConflictAudit) Start(schedule string) error {
	if _, err := j.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		j.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("注册冲突巡检任务失败: %w", err)
	}
	j.cron.Start()
	j.logger.Info("冲突巡检任务已启动", zap.String("schedule", schedule))
	return nil
}

// Stop 停止调度并等待正在执行的巡检结束
func (j *ConflictAudit) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.logger.Warn("等待冲突巡检结束超时")
	}
}

// RunOnce 执行一次巡检，返回发现的冲突数；失败时返回 -1
func (j *ConflictAudit) RunOnce(ctx context.Context) int {
	report, err := j.audit.FindConflicts(ctx)
	if err != nil {
		j.logger.Error("冲突巡检失败", zap.Error(err))
		return -1
	}

	metrics.AssignmentConflicts.Set(float64(report.Total))
	if report.Total == 0 {
		j.logger.Debug("冲突巡检完成，未发现重复占用")
		return 0
	}

	for _, p := range report.Conflicts {
		j.logger.Warn("发现教室重复占用",
			zap.String("room", p.RoomCode),
			zap.String("timeslot", p.Timeslot),
			zap.String("first", p.First.CourseSection),
			zap.String("first_day", p.First.Day),
			zap.String("second", p.Second.CourseSection),
			zap.String("second_day", p.Second.Day),
		)
	}
	return report.Total
}
