package model

import (
	"errors"
	"strings"
)

// ErrInvalidDayAbbr 无法识别的星期代码
var ErrInvalidDayAbbr = errors.New("无效的星期代码")

// DayAbbr 星期代码：单日（M、Th…）或固定的双日组合（MTh、TF、WS）
type DayAbbr string

const (
	DayMonday    DayAbbr = "M"
	DayTuesday   DayAbbr = "T"
	DayWednesday DayAbbr = "W"
	DayThursday  DayAbbr = "Th"
	DayFriday    DayAbbr = "F"
	DaySaturday  DayAbbr = "S"
	DaySunday    DayAbbr = "Su"

	DayMondayThursday    DayAbbr = "MTh"
	DayTuesdayFriday     DayAbbr = "TF"
	DayWednesdaySaturday DayAbbr = "WS"
)

// Weekdays 固定的星期列顺序
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// 单日代码 → 星期全称
var singleDays = map[DayAbbr]string{
	DayMonday:    "Monday",
	DayTuesday:   "Tuesday",
	DayWednesday: "Wednesday",
	DayThursday:  "Thursday",
	DayFriday:    "Friday",
	DaySaturday:  "Saturday",
	DaySunday:    "Sunday",
}

// 双日代码 → 组成它的单日代码
var pairedDays = map[DayAbbr][]DayAbbr{
	DayMondayThursday:    {DayMonday, DayThursday},
	DayTuesdayFriday:     {DayTuesday, DayFriday},
	DayWednesdaySaturday: {DayWednesday, DaySaturday},
}

// conflictSets 冲突邻接表，由 singleDays / pairedDays 推导，对称且自反
var conflictSets = buildConflictSets()

func buildConflictSets() map[DayAbbr][]DayAbbr {
	sets := make(map[DayAbbr][]DayAbbr, len(singleDays)+len(pairedDays))
	for _, d := range AllDayAbbrs() {
		sets[d] = []DayAbbr{d}
	}
	for _, paired := range []DayAbbr{DayMondayThursday, DayTuesdayFriday, DayWednesdaySaturday} {
		for _, single := range pairedDays[paired] {
			sets[paired] = append(sets[paired], single)
			sets[single] = append(sets[single], paired)
		}
	}
	return sets
}

// AllDayAbbrs 返回全部合法代码（单日在前，按星期顺序）
func AllDayAbbrs() []DayAbbr {
	return []DayAbbr{
		DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday, DaySunday,
		DayMondayThursday, DayTuesdayFriday, DayWednesdaySaturday,
	}
}

// ParseDayAbbr 解析星期代码；也接受单日全称（"Monday" → M，不区分大小写）
func ParseDayAbbr(s string) (DayAbbr, error) {
	s = strings.TrimSpace(s)
	d := DayAbbr(s)
	if d.Valid() {
		return d, nil
	}
	for abbr, name := range singleDays {
		if strings.EqualFold(name, s) {
			return abbr, nil
		}
	}
	return "", ErrInvalidDayAbbr
}

// Valid 是否为合法代码
func (d DayAbbr) Valid() bool {
	_, ok := conflictSets[d]
	return ok
}

// Days 返回该代码覆盖的星期全称
func (d DayAbbr) Days() []string {
	if name, ok := singleDays[d]; ok {
		return []string{name}
	}
	parts := pairedDays[d]
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, singleDays[p])
	}
	return names
}

// ConflictSet 与该代码冲突的全部代码（含自身）
func (d DayAbbr) ConflictSet() []DayAbbr {
	set := conflictSets[d]
	out := make([]DayAbbr, len(set))
	copy(out, set)
	return out
}

// ConflictsWith 两个代码是否存在同日上课
func (d DayAbbr) ConflictsWith(other DayAbbr) bool {
	for _, c := range conflictSets[d] {
		if c == other {
			return true
		}
	}
	return false
}

// Strings 将代码列表转为字符串（用于 SQL IN 参数）
func Strings(days []DayAbbr) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = string(d)
	}
	return out
}

// WeekdayIndex 星期全称在固定顺序中的位置；未知名称排在最后
func WeekdayIndex(name string) int {
	for i, w := range Weekdays {
		if strings.EqualFold(w, name) {
			return i
		}
	}
	return len(Weekdays)
}
