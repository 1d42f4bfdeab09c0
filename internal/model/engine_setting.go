package model

import "time"

// EngineSetting 引擎运行参数单例表 — 对应 engine_settings
type EngineSetting struct {
	Singleton          bool      `gorm:"primaryKey;default:true"       json:"-"`
	ItemsPerDay        int       `gorm:"not null;default:6"            json:"items_per_day"`
	RecommendThreshold float64   `gorm:"not null;default:0.3"          json:"recommend_threshold"`
	UpdatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy          *string   `gorm:"type:uuid"                     json:"updated_by,omitempty"`
}

// TableName 指定表名
func (EngineSetting) TableName() string { return "engine_settings" }
