package model

// FinalAssignment 排课结果表，对应 tbl_final_assignment
// 课程班次 → 教室、星期代码、时间段
type FinalAssignment struct {
	CourseSection string  `gorm:"column:fa_course_section;type:varchar(50);primaryKey" json:"fa_course_section"`
	RoomCode      string  `gorm:"column:fa_room_code;type:varchar(30);not null;index" json:"fa_room_code"`
	FinalTimeslot string  `gorm:"column:fa_final_timeslot;type:varchar(50);not null" json:"fa_final_timeslot"`
	DayAbbr       DayAbbr `gorm:"column:fa_day_abbr;type:varchar(5);not null" json:"fa_day_abbr"`
	StartTime     string  `gorm:"column:fa_start_time;type:time" json:"fa_start_time"`
	EndTime       string  `gorm:"column:fa_end_time;type:time" json:"fa_end_time"`
	Department    string  `gorm:"column:fa_department;type:varchar(50)" json:"fa_department"`
}

// TableName 指定表名
func (FinalAssignment) TableName() string { return "tbl_final_assignment" }

// ConflictsWith 同教室、同时间段、星期代码有交集即视为冲突（不含自身）
func (a *FinalAssignment) ConflictsWith(other *FinalAssignment) bool {
	return a.CourseSection != other.CourseSection &&
		a.RoomCode == other.RoomCode &&
		a.FinalTimeslot == other.FinalTimeslot &&
		a.DayAbbr.ConflictsWith(other.DayAbbr)
}
