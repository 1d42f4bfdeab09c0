package handler

import (
	"github.com/gin-gonic/gin"

	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/service"
	"class-inspect/backend/pkg/response"
)

// GradeHandler 周评建议模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// SuggestWeekly 根据当周记录给出等级建议
// POST /api/v1/grades/suggest
func (h *GradeHandler) SuggestWeekly(c *gin.Context) {
	var req dto.WeeklyGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.gradeSvc.SuggestWeeklyGrade(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
