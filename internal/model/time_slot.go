package model

// TimeSlot 时间段参考表，对应 tbl_time_slot（外部初始化，只读）
type TimeSlot struct {
	Key   int    `gorm:"column:ts_key;primaryKey" json:"ts_key"`
	Label string `gorm:"column:ts_final;type:varchar(50);not null" json:"ts_final"` // "08:00 - 09:00"
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "tbl_time_slot" }
