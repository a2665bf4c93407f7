package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"schedopt/internal/model"
	"schedopt/internal/repository"
)

// ── Mock DaySlotRepository ──

type mockDaySlotRepo struct {
	days []model.DaySlot // 按插入顺序保存，不排序
	err  error
}

func newMockDaySlotRepo() *mockDaySlotRepo {
	return &mockDaySlotRepo{}
}

func (m *mockDaySlotRepo) ListSingleDays(_ context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []string
	for _, d := range m.days {
		if d.DayType == model.DaySlotTypeSingle {
			out = append(out, d.Day)
		}
	}
	return out, nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots map[int]model.TimeSlot
	err   error
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[int]model.TimeSlot)}
}

func (m *mockTimeSlotRepo) List(_ context.Context) ([]model.TimeSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	// map 遍历顺序随机，由 Service 负责排序
	var out []model.TimeSlot
	for _, s := range m.slots {
		out = append(out, s)
	}
	return out, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	rows        map[string]*model.FinalAssignment
	lockedRooms []string
	updates     int
	listErr     error
	updateErr   error
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{rows: make(map[string]*model.FinalAssignment)}
}

func (m *mockAssignmentRepo) put(a model.FinalAssignment) {
	m.rows[a.CourseSection] = &a
}

func (m *mockAssignmentRepo) List(_ context.Context) ([]model.FinalAssignment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.FinalAssignment
	for _, a := range m.rows {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		if out[i].EndTime != out[j].EndTime {
			return out[i].EndTime < out[j].EndTime
		}
		return out[i].CourseSection < out[j].CourseSection
	})
	return out, nil
}

func (m *mockAssignmentRepo) GetBySection(_ context.Context, section string) (*model.FinalAssignment, error) {
	if a, ok := m.rows[section]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) GetBySectionForUpdate(ctx context.Context, section string) (*model.FinalAssignment, error) {
	return m.GetBySection(ctx, section)
}

func (m *mockAssignmentRepo) LockRoom(_ context.Context, roomCode string) error {
	m.lockedRooms = append(m.lockedRooms, roomCode)
	return nil
}

func (m *mockAssignmentRepo) FindConflict(_ context.Context, roomCode, excludeSection string, days []model.DayAbbr, timeslot string) (*model.FinalAssignment, error) {
	var sections []string
	for s := range m.rows {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	for _, s := range sections {
		a := m.rows[s]
		if a.RoomCode != roomCode || a.CourseSection == excludeSection || a.FinalTimeslot != timeslot {
			continue
		}
		for _, d := range days {
			if a.DayAbbr == d {
				cp := *a
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) UpdateSlot(_ context.Context, section string, day model.DayAbbr, timeslot, startTime, endTime string) (int64, error) {
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	a, ok := m.rows[section]
	if !ok {
		return 0, nil
	}
	m.updates++
	a.DayAbbr = day
	a.FinalTimeslot = timeslot
	a.StartTime = startTime
	a.EndTime = endTime
	return 1, nil
}

// ── Mock ReferenceCache ──

type mockCache struct {
	mu   sync.Mutex
	data map[string]interface{}
	gets int
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]interface{})}
}

func (m *mockCache) GetJSON(_ context.Context, key string, dst interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]string:
		*d = append([]string(nil), v.([]string)...)
	default:
		return false, errors.New("unsupported type")
	}
	return true, nil
}

func (m *mockCache) SetJSON(_ context.Context, key string, v interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = v
	return nil
}

// ── 组装 ──

type mockRepos struct {
	days        *mockDaySlotRepo
	timeslots   *mockTimeSlotRepo
	assignments *mockAssignmentRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		days:        newMockDaySlotRepo(),
		timeslots:   newMockTimeSlotRepo(),
		assignments: newMockAssignmentRepo(),
	}
	repo := &repository.Repository{
		DaySlot:    m.days,
		TimeSlot:   m.timeslots,
		Assignment: m.assignments,
	}
	return repo, m
}
