package service

import (
	"context"
	"hash/fnv"
	"strings"

	"golang.org/x/sync/errgroup"

	"schedopt/internal/dto"
	"schedopt/internal/model"
)

// GridService 排课网格业务接口
type GridService interface {
	// Build 以时间段为行、星期为列组装网格；search 非空时按班次或教室子串过滤（不区分大小写）
	Build(ctx context.Context, req *dto.GridRequest) (*dto.GridResponse, error)
}

type gridService struct {
	timetable TimetableService
}

// NewGridService 创建 GridService 实例
func NewGridService(timetable TimetableService) GridService {
	return &gridService{timetable: timetable}
}

func (s *gridService) Build(ctx context.Context, req *dto.GridRequest) (*dto.GridResponse, error) {
	var (
		days, timeslots []string
		assignments     []dto.AssignmentResponse
	)

	// 三项数据互不依赖，并行读取
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		days, err = s.timetable.ListDays(gctx)
		return err
	})
	g.Go(func() (err error) {
		timeslots, err = s.timetable.ListTimeSlots(gctx)
		return err
	})
	g.Go(func() (err error) {
		assignments, err = s.timetable.ListAssignments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	search := ""
	if req != nil {
		search = req.Search
	}
	return BuildGrid(days, timeslots, assignments, search), nil
}

// BuildGrid 纯函数：单元格包含星期代码覆盖该列且时间段标签与该行相同的排课
func BuildGrid(days, timeslots []string, assignments []dto.AssignmentResponse, search string) *dto.GridResponse {
	filtered := FilterAssignments(assignments, search)

	// 时间段 → 星期 → 卡片
	index := make(map[string]map[string][]dto.GridCard, len(timeslots))
	for _, a := range filtered {
		card := dto.GridCard{AssignmentResponse: a, Color: DepartmentColor(a.Department)}
		for _, day := range model.DayAbbr(a.DayAbbr).Days() {
			if index[a.FinalTimeslot] == nil {
				index[a.FinalTimeslot] = make(map[string][]dto.GridCard)
			}
			index[a.FinalTimeslot][day] = append(index[a.FinalTimeslot][day], card)
		}
	}

	rows := make([]dto.GridRow, 0, len(timeslots))
	for _, ts := range timeslots {
		row := dto.GridRow{Timeslot: ts, Cells: make([]dto.GridCell, 0, len(days))}
		for _, day := range days {
			cards := index[ts][day]
			if cards == nil {
				cards = []dto.GridCard{}
			}
			row.Cells = append(row.Cells, dto.GridCell{Day: day, Cards: cards})
		}
		rows = append(rows, row)
	}

	return &dto.GridResponse{
		Days:      days,
		Timeslots: timeslots,
		Rows:      rows,
		Total:     len(filtered),
	}
}

// FilterAssignments 按班次或教室做不区分大小写的子串匹配；search 为空时原样返回
func FilterAssignments(assignments []dto.AssignmentResponse, search string) []dto.AssignmentResponse {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return assignments
	}
	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		if strings.Contains(strings.ToLower(a.CourseSection), q) ||
			strings.Contains(strings.ToLower(a.RoomCode), q) {
			out = append(out, a)
		}
	}
	return out
}

var departmentPalette = []string{
	"#4472C4", "#ED7D31", "#A5A5A5", "#FFC000", "#5B9BD5",
	"#70AD47", "#9E480E", "#7030A0", "#C00000", "#00B0A0",
}

// DepartmentColor 院系 → 卡片颜色（同一院系颜色稳定）
func DepartmentColor(department string) string {
	d := strings.ToUpper(strings.TrimSpace(department))
	if d == "" {
		return "#D9D9D9"
	}
	h := fnv.New32a()
	h.Write([]byte(d))
	return departmentPalette[h.Sum32()%uint32(len(departmentPalette))]
}
