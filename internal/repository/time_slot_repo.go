package repository

import (
	"context"

	"gorm.io/gorm"

	"schedopt/internal/model"
)

// TimeSlotRepository 时间段参考数据访问接口
type TimeSlotRepository interface {
	// List 按 ts_key 升序返回全部时间段
	List(ctx context.Context) ([]model.TimeSlot, error)
}

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo 创建 TimeSlotRepository 实例
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) List(ctx context.Context) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Order("ts_key ASC").
		Find(&slots).Error
	return slots, err
}
