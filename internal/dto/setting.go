package dto

// ── 引擎参数模块 DTO ──

// UpdateEngineSettingRequest 更新引擎参数请求
type UpdateEngineSettingRequest struct {
	ItemsPerDay        *int     `json:"items_per_day"       binding:"omitempty,min=1,max=20"`
	RecommendThreshold *float64 `json:"recommend_threshold" binding:"omitempty,gt=0,lt=1"`
}

// EngineSettingResponse 引擎参数响应
type EngineSettingResponse struct {
	ItemsPerDay        int     `json:"items_per_day"`
	RecommendThreshold float64 `json:"recommend_threshold"`
	UpdatedAt          string  `json:"updated_at"`
}
