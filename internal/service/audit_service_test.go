package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"schedopt/internal/model"
)

func TestDetectConflicts(t *testing.T) {
	list := []model.FinalAssignment{
		{CourseSection: "CS101-B", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00", DayAbbr: "MTh"},
		{CourseSection: "CS101-A", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00", DayAbbr: "M"},
		// 同教室同时段但星期不冲突
		{CourseSection: "CS102-A", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00", DayAbbr: "TF"},
		// 不同教室
		{CourseSection: "CS103-A", RoomCode: "R2", FinalTimeslot: "08:00 - 09:00", DayAbbr: "M"},
		// 同教室不同时段
		{CourseSection: "CS104-A", RoomCode: "R1", FinalTimeslot: "09:00 - 10:00", DayAbbr: "M"},
	}

	pairs := DetectConflicts(list)
	if len(pairs) != 1 {
		t.Fatalf("期望 1 组冲突，实际 %d: %+v", len(pairs), pairs)
	}
	p := pairs[0]
	if p.First.CourseSection != "CS101-A" || p.Second.CourseSection != "CS101-B" {
		t.Errorf("冲突双方应按班次排序，实际 %s / %s", p.First.CourseSection, p.Second.CourseSection)
	}
	if p.RoomCode != "R1" || p.Timeslot != "08:00 - 09:00" {
		t.Errorf("冲突位置错误: %+v", p)
	}
}

func TestDetectConflicts_Empty(t *testing.T) {
	pairs := DetectConflicts(nil)
	if pairs == nil || len(pairs) != 0 {
		t.Errorf("无数据时应返回空数组，实际 %v", pairs)
	}
}

func TestAuditService_FindConflicts(t *testing.T) {
	repo, mocks := newMockRepository()
	mocks.assignments.put(model.FinalAssignment{CourseSection: "A", RoomCode: "R1", FinalTimeslot: "10:00 - 11:00", DayAbbr: "WS"})
	mocks.assignments.put(model.FinalAssignment{CourseSection: "B", RoomCode: "R1", FinalTimeslot: "10:00 - 11:00", DayAbbr: "S"})
	mocks.assignments.put(model.FinalAssignment{CourseSection: "C", RoomCode: "R1", FinalTimeslot: "10:00 - 11:00", DayAbbr: "W"})

	report, err := NewAuditService(repo, zap.NewNop()).FindConflicts(context.Background())
	if err != nil {
		t.Fatalf("FindConflicts 应成功: %v", err)
	}
	// A-B、A-C 冲突；B(S) 与 C(W) 不冲突
	if report.Total != 2 || len(report.Conflicts) != 2 {
		t.Fatalf("期望 2 组冲突，实际 %+v", report)
	}
}

func TestAuditService_FindConflicts_RepoError(t *testing.T) {
	repo, mocks := newMockRepository()
	mocks.assignments.listErr = errors.New("connection reset")

	if _, err := NewAuditService(repo, zap.NewNop()).FindConflicts(context.Background()); err == nil {
		t.Error("仓储错误应向上返回")
	}
}
