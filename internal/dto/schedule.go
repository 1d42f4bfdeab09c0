package dto

// ── 计划调度模块 DTO ──

// GenerateScheduleRequest 批量生成每日检查计划请求
type GenerateScheduleRequest struct {
	FromWeek int  `json:"from_week" binding:"required,min=1"`
	ToWeek   int  `json:"to_week"   binding:"required,min=1"`
	Force    bool `json:"force"` // true 时强制替换已有计划
}

// GenerateScheduleResponse 生成结果
type GenerateScheduleResponse struct {
	Generated int `json:"generated"` // 本次生成的计划数
	Skipped   int `json:"skipped"`   // 因已存在而跳过的天数
}

// ConfirmWeekPlanRequest 人工钉选一周计划请求
type ConfirmWeekPlanRequest struct {
	Week         int      `json:"week"           binding:"required,min=1"`
	CheckItemIDs []string `json:"check_item_ids" binding:"required,min=1,dive,uuid"`
}

// ConfirmWeekPlanResponse 钉选结果
type ConfirmWeekPlanResponse struct {
	Generated int `json:"generated"`
}

// DailyPlanResponse 每日计划响应
type DailyPlanResponse struct {
	ID       string              `json:"id"`
	PlanDate string              `json:"plan_date"`
	Scope    string              `json:"scope,omitempty"`
	Items    []PlanItemResponse  `json:"items"`
}

// PlanItemResponse 计划明细响应
type PlanItemResponse struct {
	CheckItemID string `json:"check_item_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	SortOrder   int    `json:"sort_order"`
}

// WeekCoverageResponse 单周覆盖概览
type WeekCoverageResponse struct {
	Week         int    `json:"week"`
	Label        string `json:"label,omitempty"`
	SchoolDays   int    `json:"school_days"`
	PlannedDays  int    `json:"planned_days"`
	DistinctItem int    `json:"distinct_items"` // 本周覆盖到的不同检查项数
}

// WeekRecommendationResponse 单周轮换建议（人工确认界面用，只读）
type WeekRecommendationResponse struct {
	Week  int                      `json:"week"`
	Items []ItemDuePriorityResponse `json:"items"`
}

// ItemDuePriorityResponse 轮换项"欠检"排序条目
type ItemDuePriorityResponse struct {
	CheckItemID    string `json:"check_item_id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	InclusionCount int    `json:"inclusion_count"`      // 学期至今进计划次数
	IdleDays       int    `json:"idle_days"`            // 距上次进计划的天数；-1 表示从未进入
	LastIncluded   string `json:"last_included,omitempty"`
}

// AdjustSuggestionResponse 计划均衡调整建议
type AdjustSuggestionResponse struct {
	CheckItemID    string `json:"check_item_id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	InclusionCount int    `json:"inclusion_count"`
	MeanCount      string `json:"mean_count"` // 轮换项平均次数（保留一位小数的展示值）
	Advice         string `json:"advice"`
}
