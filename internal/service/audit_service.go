package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"schedopt/internal/dto"
	"schedopt/internal/model"
	"schedopt/internal/repository"
)

// AuditService 冲突巡检业务接口
// 存储层不强制"同教室同时段不重复"，外部导入的数据可能已存在重复占用
type AuditService interface {
	FindConflicts(ctx context.Context) (*dto.ConflictReport, error)
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService 创建 AuditService 实例
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) FindConflicts(ctx context.Context) (*dto.ConflictReport, error) {
	list, err := s.repo.Assignment.List(ctx)
	if err != nil {
		s.logger.Error("巡检读取排课失败", zap.Error(err))
		return nil, err
	}

	pairs := DetectConflicts(list)
	return &dto.ConflictReport{Total: len(pairs), Conflicts: pairs}, nil
}

// DetectConflicts 按 (教室, 时间段) 分组后两两比较星期代码
func DetectConflicts(list []model.FinalAssignment) []dto.ConflictPair {
	type groupKey struct{ room, timeslot string }
	groups := make(map[groupKey][]*model.FinalAssignment)
	var keys []groupKey
	for i := range list {
		a := &list[i]
		k := groupKey{a.RoomCode, a.FinalTimeslot}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], a)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].room != keys[j].room {
			return keys[i].room < keys[j].room
		}
		return keys[i].timeslot < keys[j].timeslot
	})

	pairs := make([]dto.ConflictPair, 0)
	for _, k := range keys {
		members := groups[k]
		sort.Slice(members, func(i, j int) bool { return members[i].CourseSection < members[j].CourseSection })
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				if members[i].ConflictsWith(members[j]) {
					pairs = append(pairs, dto.ConflictPair{
						RoomCode: k.room,
						Timeslot: k.timeslot,
						First:    toConflictInfo(members[i]),
						Second:   toConflictInfo(members[j]),
					})
				}
			}
		}
	}
	return pairs
}
