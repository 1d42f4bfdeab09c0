package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"class-inspect/backend/internal/calendar"
	"class-inspect/backend/internal/dto"
	"class-inspect/backend/pkg/response"
)

// CalendarHandler 校历模块 HTTP 处理器
// 校历是启动时加载的只读查询表，换学期走部署期数据替换，这里不提供写接口
type CalendarHandler struct {
	cal *calendar.Calendar
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(cal *calendar.Calendar) *CalendarHandler {
	return &CalendarHandler{cal: cal}
}

// Get 查询当前学期完整校历
// GET /api/v1/calendar
func (h *CalendarHandler) Get(c *gin.Context) {
	weeks := h.cal.Weeks()
	out := dto.CalendarResponse{
		Semester:  h.cal.Semester(),
		StartDate: h.cal.StartDate().Format("2006-01-02"),
		EndDate:   h.cal.EndDate().Format("2006-01-02"),
		Weeks:     make([]dto.SchoolWeekResponse, 0, len(weeks)),
	}
	for i := range weeks {
		out.Weeks = append(out.Weeks, toSchoolWeekResponse(&weeks[i]))
	}

	response.OK(c, out)
}

// GetWeek 按周号查询校历周
// GET /api/v1/calendar/weeks/:week
func (h *CalendarHandler) GetWeek(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 {
		response.BadRequest(c, 11001, "week 参数无效")
		return
	}

	w, ok := h.cal.WeekByNumber(week)
	if !ok {
		response.NotFound(c, 11002, "周次不在本学期校历内")
		return
	}

	response.OK(c, toSchoolWeekResponse(w))
}

// CurrentWeek 查询当前所在周
// GET /api/v1/calendar/current-week
func (h *CalendarHandler) CurrentWeek(c *gin.Context) {
	w, ok := h.cal.CurrentWeek(time.Now())
	if !ok {
		response.NotFound(c, 11003, "当前不在本学期校历范围内")
		return
	}

	response.OK(c, toSchoolWeekResponse(w))
}

func toSchoolWeekResponse(w *calendar.Week) dto.SchoolWeekResponse {
	days := make([]string, 0, len(w.SchoolDays))
	for _, d := range w.SchoolDays {
		days = append(days, d.Format("2006-01-02"))
	}
	return dto.SchoolWeekResponse{
		Week:       w.Number,
		Label:      w.Label,
		StartDate:  w.StartDate.Format("2006-01-02"),
		EndDate:    w.EndDate.Format("2006-01-02"),
		SchoolDays: days,
		Note:       w.Note,
	}
}
