package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	DaySlot    DaySlotRepository
	TimeSlot   TimeSlotRepository
	Assignment AssignmentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		DaySlot:    NewDaySlotRepo(db),
		TimeSlot:   NewTimeSlotRepo(db),
		Assignment: NewAssignmentRepo(db),
	}
}

// BeginTx 以 READ COMMITTED 隔离级别开启事务
// 加锁之后的普通读取须看到其他事务已提交的写入；MySQL 默认的 REPEATABLE READ 会沿用首次读取时的快照
// 未持有数据库连接（单元测试中直接组装 Mock）时返回 nil，调用方按非事务路径执行
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository；tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
