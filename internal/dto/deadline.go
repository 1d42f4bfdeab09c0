package dto

// ── 录入时限模块 DTO ──

// DeadlineCheckRequest 录入时限查询参数
type DeadlineCheckRequest struct {
	Type string `form:"type" binding:"required,oneof=daily weekly"`
	Date string `form:"date" binding:"required"` // 目标日期 YYYY-MM-DD
}

// DeadlineCheckResponse 录入时限判定结果
type DeadlineCheckResponse struct {
	Allowed           bool   `json:"allowed"`
	IsOverride        bool   `json:"is_override"`                  // 管理员越窗写入，写入路径据此落审计
	Deadline          string `json:"deadline,omitempty"`           // RFC3339，含固定时区偏移
	DeadlineFormatted string `json:"deadline_formatted,omitempty"` // 展示用 "2006-01-02 15:04"
	Message           string `json:"message,omitempty"`
}
