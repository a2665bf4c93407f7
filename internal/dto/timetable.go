package dto

// ── 排课表模块 DTO ──

// UpdateAssignmentRequest 拖拽调整排课请求
// 字段名沿用前端约定（newDay / newTimeslot）
type UpdateAssignmentRequest struct {
	CourseCodeSection string `json:"course_code_section" binding:"required"`
	NewDay            string `json:"newDay" binding:"required,day_abbr"`
	NewTimeslot       string `json:"newTimeslot" binding:"required"`
}

// AssignmentResponse 排课记录（JSON 键与表列名一致）
type AssignmentResponse struct {
	CourseSection string `json:"fa_course_section"`
	RoomCode      string `json:"fa_room_code"`
	FinalTimeslot string `json:"fa_final_timeslot"`
	DayAbbr       string `json:"fa_day_abbr"`
	StartTime     string `json:"fa_start_time"`
	EndTime       string `json:"fa_end_time"`
	Department    string `json:"fa_department"`
}

// ConflictInfo 冲突占用方信息
type ConflictInfo struct {
	CourseSection string `json:"course_section"`
	RoomCode      string `json:"room_code"`
	Day           string `json:"day"`
	Timeslot      string `json:"timeslot"`
}

// ConflictPair 巡检发现的一对重复占用
type ConflictPair struct {
	RoomCode string       `json:"room_code"`
	Timeslot string       `json:"timeslot"`
	First    ConflictInfo `json:"first"`
	Second   ConflictInfo `json:"second"`
}

// ConflictReport 冲突巡检结果
type ConflictReport struct {
	Total     int            `json:"total"`
	Conflicts []ConflictPair `json:"conflicts"`
}
