package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/service"
	"class-inspect/backend/pkg/response"
)

// DeadlineHandler 录入时限模块 HTTP 处理器
type DeadlineHandler struct {
	deadlineSvc service.DeadlineService
	loc         *time.Location
}

// NewDeadlineHandler 创建 DeadlineHandler
func NewDeadlineHandler(deadlineSvc service.DeadlineService, loc *time.Location) *DeadlineHandler {
	return &DeadlineHandler{deadlineSvc: deadlineSvc, loc: loc}
}

// Check 判定写入是否在允许窗口内
// GET /api/v1/deadlines/check?type=weekly&date=2025-09-03
func (h *DeadlineHandler) Check(c *gin.Context) {
	var req dto.DeadlineCheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	date, ok := parseDateParam(req.Date, h.loc)
	if !ok {
		response.BadRequest(c, 15001, "date 参数无效，格式应为 YYYY-MM-DD")
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.deadlineSvc.Check(c.Request.Context(), req.Type, date, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRecordType):
			response.BadRequest(c, 15002, "记录类型无效")
		case errors.Is(err, service.ErrDateOutsideSemester):
			response.NotFound(c, 15003, "日期不在本学期校历范围内")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
