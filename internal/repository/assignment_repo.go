package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schedopt/internal/model"
)

// AssignmentRepository 排课结果数据访问接口
type AssignmentRepository interface {
	// List 返回全部排课，按开始、结束时间排序
	List(ctx context.Context) ([]model.FinalAssignment, error)
	GetBySection(ctx context.Context, section string) (*model.FinalAssignment, error)
	// GetBySectionForUpdate 行级锁读取，必须在事务连接上调用（Repository.WithTx）
	GetBySectionForUpdate(ctx context.Context, section string) (*model.FinalAssignment, error)
	// LockRoom 按主键顺序锁定教室内全部排课行，串行化同一教室的调整
	LockRoom(ctx context.Context, roomCode string) error
	// FindConflict 查找同教室、星期代码在 days 中、时间段相同的其他排课；无冲突返回 gorm.ErrRecordNotFound
	// 调整流程中须在 BeginTx 事务内、LockRoom 之后调用
	FindConflict(ctx context.Context, roomCode, excludeSection string, days []model.DayAbbr, timeslot string) (*model.FinalAssignment, error)
	// UpdateSlot 更新星期、时间段与起止时间，返回受影响行数
	UpdateSlot(ctx context.Context, section string, day model.DayAbbr, timeslot, startTime, endTime string) (int64, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) List(ctx context.Context) ([]model.FinalAssignment, error) {
	var list []model.FinalAssignment
	err := r.db.WithContext(ctx).
		Order("fa_start_time, fa_end_time").
		Find(&list).Error
	return list, err
}

func (r *assignmentRepo) GetBySection(ctx context.Context, section string) (*model.FinalAssignment, error) {
	var a model.FinalAssignment
	err := r.db.WithContext(ctx).
		Where("fa_course_section = ?", section).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) GetBySectionForUpdate(ctx context.Context, section string) (*model.FinalAssignment, error) {
	var a model.FinalAssignment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fa_course_section = ?", section).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) LockRoom(ctx context.Context, roomCode string) error {
	var sections []string
	return r.db.WithContext(ctx).
		Model(&model.FinalAssignment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fa_room_code = ?", roomCode).
		Order("fa_course_section").
		Pluck("fa_course_section", &sections).Error
}

func (r *assignmentRepo) FindConflict(ctx context.Context, roomCode, excludeSection string, days []model.DayAbbr, timeslot string) (*model.FinalAssignment, error) {
	var a model.FinalAssignment
	err := r.db.WithContext(ctx).
		Where("fa_room_code = ?", roomCode).
		Where("fa_course_section <> ?", excludeSection).
		Where("fa_day_abbr IN ?", model.Strings(days)).
		Where("fa_final_timeslot = ?", timeslot).
		Order("fa_course_section").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) UpdateSlot(ctx context.Context, section string, day model.DayAbbr, timeslot, startTime, endTime string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.FinalAssignment{}).
		Where("fa_course_section = ?", section).
		Updates(map[string]interface{}{
			"fa_day_abbr":       string(day),
			"fa_final_timeslot": timeslot,
			"fa_start_time":     startTime,
			"fa_end_time":       endTime,
		})
	return res.RowsAffected, res.Error
}
