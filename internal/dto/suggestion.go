package dto

// ── 每日建议模块 DTO ──

// DailySuggestionResponse 当日检查项建议
type DailySuggestionResponse struct {
	TargetDate string               `json:"target_date"`
	Items      []SuggestedItem      `json:"items"`  // 完整排序列表（得分降序）
	TopPicks   []SuggestedItem      `json:"top_picks"` // 得分前 3
}

// SuggestedItem 建议条目：每一项得分成分都可解释、可复算
type SuggestedItem struct {
	CheckItemID     string  `json:"check_item_id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Score           float64 `json:"score"`
	FailRate        float64 `json:"fail_rate"`         // 回看窗口内不合格率
	RecordCount     int     `json:"record_count"`      // 窗口内记录数
	StaleDays       int     `json:"stale_days"`        // 距上次进计划天数（封顶 30）
	RotationTerm    float64 `json:"rotation_term"`     // 确定性轮换扰动项 [0,0.25)
	Recommended     bool    `json:"recommended"`
	Reason          string  `json:"reason"`
}
