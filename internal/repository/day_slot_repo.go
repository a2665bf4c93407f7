package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"schedopt/internal/model"
)

// DaySlotRepository 星期参考数据访问接口
type DaySlotRepository interface {
	// ListSingleDays 返回 Single 类型的星期名，按周一至周日排序
	ListSingleDays(ctx context.Context) ([]string, error)
}

type daySlotRepo struct {
	db *gorm.DB
}

// NewDaySlotRepo 创建 DaySlotRepository 实例
func NewDaySlotRepo(db *gorm.DB) DaySlotRepository {
	return &daySlotRepo{db: db}
}

// weekdayOrderSQL 固定星期顺序（MySQL FIELD() 的可移植写法）
var weekdayOrderSQL = func() string {
	var b strings.Builder
	b.WriteString("CASE ds_day")
	for i, day := range model.Weekdays {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", day, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(model.Weekdays))
	return b.String()
}()

func (r *daySlotRepo) ListSingleDays(ctx context.Context) ([]string, error) {
	var days []string
	err := r.db.WithContext(ctx).
		Model(&model.DaySlot{}).
		Where("ds_day_type = ?", model.DaySlotTypeSingle).
		Order(weekdayOrderSQL).
		Pluck("ds_day", &days).Error
	return days, err
}
