package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"class-inspect/backend/config"
	"class-inspect/backend/internal/calendar"
	"class-inspect/backend/internal/model"
	"class-inspect/backend/internal/repository"
	pkgerrors "class-inspect/backend/pkg/errors"
)

// ── 内存版 Repository，供服务层单测使用 ──
// db 留空，BeginTx 返回 nil 事务、WithTx 原样返回，写入直接落内存

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		SchoolWeek:    &mockSchoolWeekRepo{},
		CheckItem:     &mockCheckItemRepo{},
		DailyPlan:     &mockDailyPlanRepo{plans: map[string]*model.DailyPlan{}},
		CheckRecord:   &mockCheckRecordRepo{},
		EngineSetting: &mockEngineSettingRepo{},
	}
}

func testEngineConfig(itemsPerDay int) *config.EngineConfig {
	return &config.EngineConfig{
		Semester:     "2025-2026-1",
		Timezone:     "Asia/Shanghai",
		ItemsPerDay:  itemsPerDay,
		PlanScopes:   []string{""},
		LookbackDays: 30,
	}
}

func mustDate(s string, loc *time.Location) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		panic(err)
	}
	return d
}

// testCalendar 两个整周的校历：第 1 周 09-01（周一）至 09-07，第 2 周 09-08 至 09-14，
// 上课日为各周周一至周五
func testCalendar(loc *time.Location) *calendar.Calendar {
	weekDays := func(monday string) []time.Time {
		start := mustDate(monday, loc)
		days := make([]time.Time, 5)
		for i := range days {
			days[i] = start.AddDate(0, 0, i)
		}
		return days
	}
	cal, err := calendar.New("2025-2026-1", []calendar.Week{
		{
			Number:     1,
			StartDate:  mustDate("2025-09-01", loc),
			EndDate:    mustDate("2025-09-07", loc),
			SchoolDays: weekDays("2025-09-01"),
		},
		{
			Number:     2,
			StartDate:  mustDate("2025-09-08", loc),
			EndDate:    mustDate("2025-09-14", loc),
			SchoolDays: weekDays("2025-09-08"),
		},
	}, loc)
	if err != nil {
		panic(err)
	}
	return cal
}

// ── 校历周 ──

type mockSchoolWeekRepo struct {
	weeks []model.SchoolWeek
}

func (m *mockSchoolWeekRepo) ListBySemester(_ context.Context, semester string) ([]model.SchoolWeek, error) {
	var out []model.SchoolWeek
	for _, w := range m.weeks {
		if w.Semester == semester {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}

func (m *mockSchoolWeekRepo) ReplaceSemester(_ context.Context, semester string, weeks []model.SchoolWeek) error {
	kept := m.weeks[:0]
	for _, w := range m.weeks {
		if w.Semester != semester {
			kept = append(kept, w)
		}
	}
	m.weeks = append(kept, weeks...)
	return nil
}

// ── 检查项 ──

type mockCheckItemRepo struct {
	items       []*model.CheckItem
	recordedIDs map[string]bool // 标记"已有历史记录"的检查项，测试按需填充
}

func (m *mockCheckItemRepo) Create(_ context.Context, item *model.CheckItem) error {
	cp := *item
	m.items = append(m.items, &cp)
	return nil
}

func (m *mockCheckItemRepo) GetByID(_ context.Context, id string) (*model.CheckItem, error) {
	for _, it := range m.items {
		if it.CheckItemID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCheckItemRepo) GetByCode(_ context.Context, code string) (*model.CheckItem, error) {
	for _, it := range m.items {
		if it.Code == code {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCheckItemRepo) List(_ context.Context, module string, includeInactive bool) ([]model.CheckItem, error) {
	var out []model.CheckItem
	for _, it := range m.items {
		if module != "" && it.Module != module {
			continue
		}
		if !includeInactive && !it.IsActive {
			continue
		}
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *mockCheckItemRepo) ListActiveByModule(_ context.Context, module string) ([]model.CheckItem, error) {
	var out []model.CheckItem
	for _, it := range m.items {
		if it.Module == module && it.IsActive && !it.IsDynamic {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *mockCheckItemRepo) ListDynamicByDate(_ context.Context, date time.Time) ([]model.CheckItem, error) {
	key := date.Format("2006-01-02")
	var out []model.CheckItem
	for _, it := range m.items {
		if it.IsDynamic && it.IsActive && it.SpecificDate != nil && it.SpecificDate.Format("2006-01-02") == key {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *mockCheckItemRepo) Update(_ context.Context, item *model.CheckItem) error {
	for i, it := range m.items {
		if it.CheckItemID == item.CheckItemID {
			cp := *item
			m.items[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCheckItemRepo) Delete(_ context.Context, id string) error {
	for i, it := range m.items {
		if it.CheckItemID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockCheckItemRepo) HasRecords(_ context.Context, id string) (bool, error) {
	return m.recordedIDs[id], nil
}

// ── 每日计划 ──

type mockDailyPlanRepo struct {
	plans map[string]*model.DailyPlan // key: 日期|范围
}

func planKey(date time.Time, scope string) string {
	return date.Format("2006-01-02") + "|" + scope
}

func (m *mockDailyPlanRepo) Create(_ context.Context, plan *model.DailyPlan) error {
	cp := *plan
	cp.Items = nil
	m.plans[planKey(plan.PlanDate, plan.Scope)] = &cp
	return nil
}

func (m *mockDailyPlanRepo) CreateItems(_ context.Context, items []model.DailyPlanItem) error {
	for _, it := range items {
		for _, p := range m.plans {
			if p.DailyPlanID == it.DailyPlanID {
				p.Items = append(p.Items, it)
			}
		}
	}
	return nil
}

func (m *mockDailyPlanRepo) GetByDateScope(_ context.Context, date time.Time, scope string) (*model.DailyPlan, error) {
	p, ok := m.plans[planKey(date, scope)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Items = append([]model.DailyPlanItem(nil), p.Items...)
	sort.Slice(cp.Items, func(i, j int) bool { return cp.Items[i].SortOrder < cp.Items[j].SortOrder })
	return &cp, nil
}

func (m *mockDailyPlanRepo) ListWithItemsByDateRange(_ context.Context, from, to time.Time) ([]model.DailyPlan, error) {
	var out []model.DailyPlan
	for _, p := range m.plans {
		if p.PlanDate.Before(from) || p.PlanDate.After(to) {
			continue
		}
		cp := *p
		cp.Items = append([]model.DailyPlanItem(nil), p.Items...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlanDate.Before(out[j].PlanDate) })
	return out, nil
}

func (m *mockDailyPlanRepo) DeleteByDateScope(_ context.Context, date time.Time, scope string) error {
	delete(m.plans, planKey(date, scope))
	return nil
}

func (m *mockDailyPlanRepo) DeleteVersioned(_ context.Context, date time.Time, scope string, version int) error {
	p, ok := m.plans[planKey(date, scope)]
	if !ok || p.Version != version {
		return pkgerrors.ErrOptimisticLock
	}
	delete(m.plans, planKey(date, scope))
	return nil
}

// ── 检查记录（引擎侧只读） ──

type mockCheckRecordRepo struct {
	records []model.CheckRecord
}

func (m *mockCheckRecordRepo) ListByModuleAndDateRange(_ context.Context, module string, from, to time.Time) ([]model.CheckRecord, error) {
	var out []model.CheckRecord
	for _, r := range m.records {
		if r.CheckItem == nil || r.CheckItem.Module != module {
			continue
		}
		if r.RecordDate.Before(from) || r.RecordDate.After(to) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordDate.Before(out[j].RecordDate) })
	return out, nil
}

func (m *mockCheckRecordRepo) ListByClassAndDateRange(_ context.Context, classID string, from, to time.Time) ([]model.CheckRecord, error) {
	var out []model.CheckRecord
	for _, r := range m.records {
		if r.ClassID != classID {
			continue
		}
		if r.RecordDate.Before(from) || r.RecordDate.After(to) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordDate.Before(out[j].RecordDate) })
	return out, nil
}

// ── 引擎参数单例 ──

type mockEngineSettingRepo struct {
	setting *model.EngineSetting
}

func (m *mockEngineSettingRepo) Get(_ context.Context) (*model.EngineSetting, error) {
	if m.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.setting
	return &cp, nil
}

func (m *mockEngineSettingRepo) Update(_ context.Context, setting *model.EngineSetting) error {
	cp := *setting
	m.setting = &cp
	return nil
}
