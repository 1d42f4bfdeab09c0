package handler

import (
	"github.com/gin-gonic/gin"

	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/service"
	"class-inspect/backend/pkg/response"
)

// SettingHandler 引擎参数模块 HTTP 处理器
type SettingHandler struct {
	settingSvc service.SettingService
}

// NewSettingHandler 创建 SettingHandler
func NewSettingHandler(settingSvc service.SettingService) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc}
}

// Get 查询引擎运行参数
// GET /api/v1/engine-settings
func (h *SettingHandler) Get(c *gin.Context) {
	setting, err := h.settingSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, setting)
}

// Update 更新引擎运行参数
// PUT /api/v1/engine-settings
func (h *SettingHandler) Update(c *gin.Context) {
	var req dto.UpdateEngineSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "参数校验失败")
		return
	}

	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	setting, err := h.settingSvc.Update(c.Request.Context(), &req, operatorID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, setting)
}
