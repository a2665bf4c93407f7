package dto

// ── 排课网格 DTO ──

// GridRequest 网格查询参数
type GridRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`
}

// GridCard 网格中的一张排课卡片
type GridCard struct {
	AssignmentResponse
	Color string `json:"color"` // 按院系着色
}

// GridCell 单元格（某天 × 某时间段）
type GridCell struct {
	Day   string     `json:"day"`
	Cards []GridCard `json:"cards"`
}

// GridRow 一行对应一个时间段
type GridRow struct {
	Timeslot string     `json:"timeslot"`
	Cells    []GridCell `json:"cells"`
}

// GridResponse 排课网格
type GridResponse struct {
	Days      []string  `json:"days"`
	Timeslots []string  `json:"timeslots"`
	Rows      []GridRow `json:"rows"`
	Total     int       `json:"total"` // 过滤后的排课数
}
