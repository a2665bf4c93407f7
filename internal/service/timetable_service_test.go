package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"schedopt/internal/dto"
	"schedopt/internal/model"
	"schedopt/internal/repository"
)

// ── 测试辅助 ──

func setupTestTimetableService() (TimetableService, *mockRepos) {
	repo, mocks := newMockRepository()
	svc, _ := setupTimetableOn(repo)
	return svc, mocks
}

func setupTimetableOn(repo *repository.Repository) (TimetableService, *mockCache) {
	cache := newMockCache()
	return NewTimetableService(repo, cache, 0, zap.NewNop()), cache
}

func seedReference(m *mockRepos) {
	// 故意打乱插入顺序
	m.days.days = []model.DaySlot{
		{Day: "Sunday", DayType: "Single"},
		{Day: "Wednesday", DayType: "Single"},
		{Day: "Monday,Thursday", DayType: "Paired"},
		{Day: "Monday", DayType: "Single"},
		{Day: "Saturday", DayType: "Single"},
		{Day: "Tuesday", DayType: "Single"},
		{Day: "Friday", DayType: "Single"},
		{Day: "Thursday", DayType: "Single"},
	}
	m.timeslots.slots[3] = model.TimeSlot{Key: 3, Label: "10:00 - 11:00"}
	m.timeslots.slots[1] = model.TimeSlot{Key: 1, Label: "08:00 - 09:00"}
	m.timeslots.slots[2] = model.TimeSlot{Key: 2, Label: "09:00 - 10:00"}
	m.timeslots.slots[10] = model.TimeSlot{Key: 10, Label: "17:00 - 18:00"}
}

// ── ListDays 测试 ──

func TestTimetableService_ListDays_WeekdayOrder(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	seedReference(mocks)

	days, err := svc.ListDays(context.Background())
	if err != nil {
		t.Fatalf("ListDays 应成功: %v", err)
	}

	want := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if len(days) != len(want) {
		t.Fatalf("期望 %d 天，实际 %v", len(want), days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("第 %d 列期望 %s，实际 %s", i, want[i], days[i])
		}
	}
}

func TestTimetableService_ListDays_Empty(t *testing.T) {
	svc, _ := setupTestTimetableService()

	days, err := svc.ListDays(context.Background())
	if err != nil {
		t.Fatalf("ListDays 应成功: %v", err)
	}
	if days == nil || len(days) != 0 {
		t.Errorf("期望空数组（非 nil），实际 %v", days)
	}
}

func TestTimetableService_ListDays_RepoError(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.days.err = errors.New("connection refused")

	if _, err := svc.ListDays(context.Background()); err == nil {
		t.Error("仓储错误应向上返回")
	}
}

func TestTimetableService_ListDays_UsesCache(t *testing.T) {
	repo, mocks := newMockRepository()
	seedReference(mocks)
	svc, cache := setupTimetableOn(repo)

	first, err := svc.ListDays(context.Background())
	if err != nil {
		t.Fatalf("ListDays 应成功: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("首次查询应写入缓存，sets=%d", cache.sets)
	}

	// 缓存命中后不再访问仓储
	mocks.days.err = errors.New("should not be called")
	second, err := svc.ListDays(context.Background())
	if err != nil {
		t.Fatalf("缓存命中时不应报错: %v", err)
	}
	if len(second) != len(first) || second[0] != "Monday" {
		t.Errorf("缓存结果不符: %v", second)
	}
}

// ── ListTimeSlots 测试 ──

func TestTimetableService_ListTimeSlots_OrderedByKey(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	seedReference(mocks)

	labels, err := svc.ListTimeSlots(context.Background())
	if err != nil {
		t.Fatalf("ListTimeSlots 应成功: %v", err)
	}

	want := []string{"08:00 - 09:00", "09:00 - 10:00", "10:00 - 11:00", "17:00 - 18:00"}
	if len(labels) != len(want) {
		t.Fatalf("期望 %v，实际 %v", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("第 %d 行期望 %s，实际 %s", i, want[i], labels[i])
		}
	}
}

// ── ListAssignments 测试 ──

func TestTimetableService_ListAssignments(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.assignments.put(model.FinalAssignment{CourseSection: "B", RoomCode: "R1", FinalTimeslot: "09:00 - 10:00", DayAbbr: "T", StartTime: "09:00", EndTime: "10:00", Department: "CCS"})
	mocks.assignments.put(model.FinalAssignment{CourseSection: "A", RoomCode: "R2", FinalTimeslot: "08:00 - 09:00", DayAbbr: "MTh", StartTime: "08:00", EndTime: "09:00", Department: "CBA"})

	list, err := svc.ListAssignments(context.Background())
	if err != nil {
		t.Fatalf("ListAssignments 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 条，实际 %d", len(list))
	}
	if list[0].CourseSection != "A" || list[0].DayAbbr != "MTh" || list[0].Department != "CBA" {
		t.Errorf("首条应为最早开始的 A，实际 %+v", list[0])
	}
}

// ── UpdateAssignment 测试 ──

func TestTimetableService_Update_MissingFields(t *testing.T) {
	svc, _ := setupTestTimetableService()

	cases := []dto.UpdateAssignmentRequest{
		{NewDay: "M", NewTimeslot: "08:00 - 09:00"},
		{CourseCodeSection: "CS101-A", NewTimeslot: "08:00 - 09:00"},
		{CourseCodeSection: "CS101-A", NewDay: "M"},
		{CourseCodeSection: "   ", NewDay: "M", NewTimeslot: "08:00 - 09:00"},
	}
	for i := range cases {
		if err := svc.UpdateAssignment(context.Background(), &cases[i], ""); !errors.Is(err, ErrMissingField) {
			t.Errorf("case %d: 期望 ErrMissingField，实际: %v", i, err)
		}
	}
}

func TestTimetableService_Update_InvalidDay(t *testing.T) {
	svc, _ := setupTestTimetableService()

	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "CS101-A", NewDay: "Funday", NewTimeslot: "08:00 - 09:00",
	}, "")
	if !errors.Is(err, ErrInvalidDay) {
		t.Errorf("期望 ErrInvalidDay，实际: %v", err)
	}
}

func TestTimetableService_Update_InvalidTimeslot(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS101-A", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00", DayAbbr: "M"})

	for _, label := range []string{"08:00", "08:00 -", "- 09:00"} {
		err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
			CourseCodeSection: "CS101-A", NewDay: "T", NewTimeslot: label,
		}, "")
		if !errors.Is(err, ErrInvalidTimeslot) {
			t.Errorf("%q: 期望 ErrInvalidTimeslot，实际: %v", label, err)
		}
	}
	if mocks.assignments.updates != 0 {
		t.Error("校验失败时不应写入")
	}
}

func TestTimetableService_Update_NotFound(t *testing.T) {
	svc, mocks := setupTestTimetableService()

	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "NOPE-1", NewDay: "M", NewTimeslot: "08:00 - 09:00",
	}, "")
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际: %v", err)
	}
	if mocks.assignments.updates != 0 {
		t.Error("未找到时不应写入")
	}
}

func TestTimetableService_Update_Success_SplitsTimes(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.assignments.put(model.FinalAssignment{
		CourseSection: "CS101-A", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00",
		DayAbbr: "M", StartTime: "08:00", EndTime: "09:00",
	})

	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "CS101-A", NewDay: "TF", NewTimeslot: "13:00 - 14:30",
	}, "registrar")
	if err != nil {
		t.Fatalf("UpdateAssignment 应成功: %v", err)
	}

	got := mocks.assignments.rows["CS101-A"]
	if got.DayAbbr != model.DayTuesdayFriday {
		t.Errorf("期望 DayAbbr=TF，实际=%s", got.DayAbbr)
	}
	if got.FinalTimeslot != "13:00 - 14:30" {
		t.Errorf("期望时间段=13:00 - 14:30，实际=%s", got.FinalTimeslot)
	}
	if got.StartTime != "13:00" || got.EndTime != "14:30" {
		t.Errorf("起止时间拆分错误: start=%s end=%s", got.StartTime, got.EndTime)
	}
	if got.RoomCode != "R1" {
		t.Error("调整不应改变教室")
	}
	if len(mocks.assignments.lockedRooms) != 1 || mocks.assignments.lockedRooms[0] != "R1" {
		t.Errorf("期望锁定教室 R1，实际 %v", mocks.assignments.lockedRooms)
	}
}

func TestTimetableService_Update_AcceptsFullDayName(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS101-A", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00", DayAbbr: "MTh"})

	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "CS101-A", NewDay: "Wednesday", NewTimeslot: "08:00 - 09:00",
	}, "")
	if err != nil {
		t.Fatalf("UpdateAssignment 应成功: %v", err)
	}
	if got := mocks.assignments.rows["CS101-A"].DayAbbr; got != model.DayWednesday {
		t.Errorf("期望 W，实际 %s", got)
	}
}

func TestTimetableService_Update_SelfMoveIsIdempotent(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	original := model.FinalAssignment{
		CourseSection: "CS101-A", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00",
		DayAbbr: "M", StartTime: "08:00", EndTime: "09:00", Department: "CCS",
	}
	mocks.assignments.put(original)

	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "CS101-A", NewDay: "M", NewTimeslot: "08:00 - 09:00",
	}, "")
	if err != nil {
		t.Fatalf("移动到自身当前位置不应冲突: %v", err)
	}
	if got := *mocks.assignments.rows["CS101-A"]; got != original {
		t.Errorf("记录不应发生实质变化: %+v", got)
	}
}

func TestTimetableService_Update_ConflictPairedDay(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS101-A", RoomCode: "R1", FinalTimeslot: "08:00-09:00", DayAbbr: "M", StartTime: "08:00", EndTime: "09:00"})
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS101-B", RoomCode: "R1", FinalTimeslot: "08:00-09:00", DayAbbr: "Th", StartTime: "08:00", EndTime: "09:00"})

	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "CS101-B", NewDay: "MTh", NewTimeslot: "08:00-09:00",
	}, "")

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("期望 *ConflictError，实际: %v", err)
	}
	if !errors.Is(err, ErrScheduleConflict) {
		t.Error("ConflictError 应可用 errors.Is 匹配 ErrScheduleConflict")
	}
	info := conflict.Info()
	if info.CourseSection != "CS101-A" || info.RoomCode != "R1" || info.Day != "M" || info.Timeslot != "08:00-09:00" {
		t.Errorf("冲突信息不符: %+v", info)
	}
	if got := mocks.assignments.rows["CS101-B"].DayAbbr; got != model.DayThursday {
		t.Errorf("冲突时不应写入，实际 DayAbbr=%s", got)
	}
}

func TestTimetableService_Update_ConflictOnSingleDayAgainstPaired(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.assignments.put(model.FinalAssignment{CourseSection: "IT201-A", RoomCode: "LAB1", FinalTimeslot: "10:00 - 11:00", DayAbbr: "WS"})
	mocks.assignments.put(model.FinalAssignment{CourseSection: "IT202-A", RoomCode: "LAB1", FinalTimeslot: "08:00 - 09:00", DayAbbr: "S"})

	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "IT202-A", NewDay: "S", NewTimeslot: "10:00 - 11:00",
	}, "")
	var conflict *ConflictError
	if !errors.As(err, &conflict) || conflict.Occupant.CourseSection != "IT201-A" {
		t.Fatalf("期望与 IT201-A 冲突，实际: %v", err)
	}
}

func TestTimetableService_Update_NoConflictOtherRoomOrDay(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS101-A", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00", DayAbbr: "M"})
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS102-A", RoomCode: "R2", FinalTimeslot: "08:00 - 09:00", DayAbbr: "M"})
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS103-A", RoomCode: "R2", FinalTimeslot: "09:00 - 10:00", DayAbbr: "T"})

	// 不同教室同一时段：不冲突
	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "CS103-A", NewDay: "Th", NewTimeslot: "08:00 - 09:00",
	}, "")
	if err != nil {
		t.Fatalf("Th 与 M 不冲突，应成功: %v", err)
	}
	if mocks.assignments.updates != 1 {
		t.Errorf("期望写入 1 次，实际 %d", mocks.assignments.updates)
	}
}

// 首尾空白不影响冲突判断，内部字符必须与存储标签一致
func TestTimetableService_Update_TimeslotLabelMatching(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS101-A", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00", DayAbbr: "M"})
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS101-B", RoomCode: "R1", FinalTimeslot: "10:00 - 11:00", DayAbbr: "M"})

	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "CS101-B", NewDay: "M", NewTimeslot: "  08:00 - 09:00 ",
	}, "")
	if !errors.Is(err, ErrScheduleConflict) {
		t.Fatalf("首尾空白的标签应与 CS101-A 冲突，实际: %v", err)
	}

	// 内部空白不同视为不同标签，原样写入
	err = svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "CS101-B", NewDay: "M", NewTimeslot: " 08:00-09:00 ",
	}, "")
	if err != nil {
		t.Fatalf("不同标签不应冲突: %v", err)
	}
	if got := mocks.assignments.rows["CS101-B"].FinalTimeslot; got != "08:00-09:00" {
		t.Errorf("期望写入去除首尾空白的标签，实际 %q", got)
	}
}

func TestTimetableService_Update_RepoError(t *testing.T) {
	svc, mocks := setupTestTimetableService()
	mocks.assignments.put(model.FinalAssignment{CourseSection: "CS101-A", RoomCode: "R1", FinalTimeslot: "08:00 - 09:00", DayAbbr: "M"})
	mocks.assignments.updateErr = errors.New("deadlock")

	err := svc.UpdateAssignment(context.Background(), &dto.UpdateAssignmentRequest{
		CourseCodeSection: "CS101-A", NewDay: "T", NewTimeslot: "08:00 - 09:00",
	}, "")
	if err == nil || errors.Is(err, ErrScheduleConflict) {
		t.Errorf("期望基础设施错误，实际: %v", err)
	}
}

// ── SplitTimeslot 测试 ──

func TestSplitTimeslot(t *testing.T) {
	cases := map[string][2]string{
		"08:00 - 09:00":      {"08:00", "09:00"},
		"08:00-09:00":        {"08:00", "09:00"},
		" 7:30 AM - 9:00 AM": {"7:30 AM", "9:00 AM"},
	}
	for in, want := range cases {
		start, end, err := SplitTimeslot(in)
		if err != nil {
			t.Errorf("%q 不应报错: %v", in, err)
			continue
		}
		if start != want[0] || end != want[1] {
			t.Errorf("%q 期望 %v，实际 [%s %s]", in, want, start, end)
		}
	}
}
