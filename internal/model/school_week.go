package model

import "time"

// SchoolWeek 校历周表 — 对应 school_weeks
// 每学期人工维护一次（节假日调休周的上课日逐日列举），运行期只读
type SchoolWeek struct {
	SchoolWeekID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_week_id"`
	Semester     string    `gorm:"type:varchar(50);not null"                      json:"semester"`
	WeekNumber   int       `gorm:"not null"                                       json:"week_number"`
	Label        string    `gorm:"type:varchar(100);not null;default:''"          json:"label"`
	StartDate    time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null"                             json:"end_date"`
	SchoolDays   DateArray `gorm:"type:date[];not null"                           json:"school_days"`
	Note         string    `gorm:"type:varchar(255);not null;default:''"          json:"note"`
	BaseModel
}

// TableName 指定表名
func (SchoolWeek) TableName() string { return "school_weeks" }
