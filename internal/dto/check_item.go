package dto

// ── 检查项模块 DTO ──

// CreateCheckItemRequest 新建检查项请求
type CreateCheckItemRequest struct {
	Module       string  `json:"module"        binding:"required,oneof=DAILY WEEKLY"`
	Code         string  `json:"code"          binding:"required,min=2,max=20"`
	Name         string  `json:"name"          binding:"required,min=2,max=100"`
	Category     string  `json:"category"      binding:"required,oneof=resident rotating"`
	IsDynamic    bool    `json:"is_dynamic"`
	SpecificDate *string `json:"specific_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateCheckItemRequest 更新检查项请求
type UpdateCheckItemRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Category     *string `json:"category"      binding:"omitempty,oneof=resident rotating"`
	SpecificDate *string `json:"specific_date" binding:"omitempty,datetime=2006-01-02"`
}

// CheckItemResponse 检查项响应
type CheckItemResponse struct {
	ID           string `json:"id"`
	Module       string `json:"module"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	IsDynamic    bool   `json:"is_dynamic"`
	SpecificDate string `json:"specific_date,omitempty"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
