package dto

// ── 校历模块 DTO ──

// SchoolWeekResponse 校历周响应
type SchoolWeekResponse struct {
	Week       int      `json:"week"`
	Label      string   `json:"label,omitempty"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	SchoolDays []string `json:"school_days"`
	Note       string   `json:"note,omitempty"`
}

// CalendarResponse 学期校历响应
type CalendarResponse struct {
	Semester  string               `json:"semester"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Weeks     []SchoolWeekResponse `json:"weeks"`
}
