package model

import "time"

// 周检档位
const (
	OptionZero = "0"    // 未发生
	OptionOnce = "1"    // 发生 1 次
	OptionGte2 = "gte2" // 发生 ≥2 次
)

// 不合格严重程度
const (
	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySerious  = "serious"
)

// CheckRecord 检查记录表 — 对应 check_records
// 日检按检查日期、周检按当周周五日期落库；(class, item, date) 复合键唯一。
// 首次提交创建、更正时原地更新并保留 original_value 与审核人，不做物理删除。
type CheckRecord struct {
	CheckRecordID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"check_record_id"`
	ClassID       string     `gorm:"type:uuid;not null"                             json:"class_id"`
	CheckItemID   string     `gorm:"type:uuid;not null"                             json:"check_item_id"`
	RecordDate    time.Time  `gorm:"type:date;not null"                             json:"record_date"`
	Passed        *bool      `gorm:""                                               json:"passed,omitempty"`       // 日检通过/不通过
	OptionValue   string     `gorm:"type:varchar(10);not null;default:''"           json:"option_value,omitempty"` // 周检档位 0|1|gte2
	Severity      string     `gorm:"type:varchar(10);not null;default:''"           json:"severity,omitempty"`     // minor|moderate|serious
	Comment       string     `gorm:"type:varchar(500);not null;default:''"          json:"comment,omitempty"`
	ScoredBy      *string    `gorm:"type:uuid"                                      json:"scored_by,omitempty"`
	ScorerRole    string     `gorm:"type:varchar(20);not null;default:''"           json:"scorer_role,omitempty"`
	OriginalValue string     `gorm:"type:varchar(20);not null;default:''"           json:"original_value,omitempty"` // 被更正前的原始值
	ReviewedBy    *string    `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`    // 更正审核人
	CheckItem     *CheckItem `gorm:"foreignKey:CheckItemID"                         json:"check_item,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CheckRecord) TableName() string { return "check_records" }
