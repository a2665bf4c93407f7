package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"schedopt/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTimeslots  = errors.New("暂无时间段数据")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 输出格式与页面网格一致：
//   - 行头：时间段标签（按 ts_key）
//   - 列头：周一 ~ 周日（Single 类型）
//   - 单元格：每行一条 "班次 (教室)"
type ExportService interface {
	// ExportTimetable 导出排课网格为 Excel，返回内容与建议文件名
	ExportTimetable(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	grid   GridService
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(grid GridService, logger *zap.Logger) ExportService {
	return &exportService{grid: grid, logger: logger, now: time.Now}
}

func (s *exportService) ExportTimetable(ctx context.Context) (*bytes.Buffer, string, error) {
	g, err := s.grid.Build(ctx, &dto.GridRequest{})
	if err != nil {
		return nil, "", err
	}
	if len(g.Timeslots) == 0 {
		return nil, "", ErrExportNoTimeslots
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 18)
	if len(g.Days) > 0 {
		f.SetColWidth(sheetName, colName(1), colName(len(g.Days)), 24)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	// 表头
	f.SetCellValue(sheetName, cell("A", 1), "Time")
	for i, day := range g.Days {
		f.SetCellValue(sheetName, cell(colName(i+1), 1), day)
	}
	f.SetCellStyle(sheetName, cell("A", 1), cell(colName(len(g.Days)), 1), headerStyle)

	// 数据行
	for r, gridRow := range g.Rows {
		row := r + 2
		f.SetCellValue(sheetName, cell("A", row), gridRow.Timeslot)
		for i, c := range gridRow.Cells {
			lines := make([]string, 0, len(c.Cards))
			for _, card := range c.Cards {
				lines = append(lines, fmt.Sprintf("%s (%s)", card.CourseSection, card.RoomCode))
			}
			f.SetCellValue(sheetName, cell(colName(i+1), row), strings.Join(lines, "\n"))
		}
		if len(g.Days) > 0 {
			f.SetCellStyle(sheetName, cell(colName(1), row), cell(colName(len(g.Days)), row), cellStyle)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("timetable_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

// colName 第 idx 列（0 为 A）
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
