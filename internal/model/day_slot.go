package model

// DaySlotTypeSingle 单日类型
const DaySlotTypeSingle = "Single"

// DaySlot 星期参考表，对应 tbl_day_slot（外部初始化，只读）
type DaySlot struct {
	Day     string `gorm:"column:ds_day;type:varchar(30);primaryKey" json:"ds_day"`
	DayType string `gorm:"column:ds_day_type;type:varchar(20);not null" json:"ds_day_type"` // Single | Paired
}

// TableName 指定表名
func (DaySlot) TableName() string { return "tbl_day_slot" }
