package dto

// ── 周评模块 DTO ──

// WeeklyGradeRequest 周评建议请求：入参即当周原始记录，引擎不回查存储
type WeeklyGradeRequest struct {
	DailyRecords     []DailyRecordInput     `json:"daily_records"     binding:"dive"`
	WeeklyIndicators []WeeklyIndicatorInput `json:"weekly_indicators" binding:"dive"`
}

// DailyRecordInput 单条日检记录
type DailyRecordInput struct {
	Passed   bool   `json:"passed"`
	Severity string `json:"severity" binding:"omitempty,oneof=minor moderate serious"`
}

// WeeklyIndicatorInput 单个周指标档位
type WeeklyIndicatorInput struct {
	Code  string `json:"code"  binding:"required"`
	Value string `json:"value" binding:"required,oneof=0 1 gte2"`
}

// WeeklyGradeResponse 周评建议结果
type WeeklyGradeResponse struct {
	Grade      string `json:"grade"`      // A | B | C
	Reason     string `json:"reason"`     // 逐条列举触发的判定条件，可审计
	Confidence string `json:"confidence"` // high | medium | low
}
