package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"class-inspect/backend/config"
	"class-inspect/backend/internal/calendar"
	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/model"
	"class-inspect/backend/internal/repository"
	pkgerrors "class-inspect/backend/pkg/errors"
)

var (
	ErrWeekRangeInvalid  = errors.New("周次范围无效")
	ErrWeekNotFound      = errors.New("周次不在本学期校历内")
	ErrPlanNotFound      = errors.New("该日期暂无检查计划")
	ErrCheckItemNotFound = errors.New("检查项不存在")
	ErrCheckItemInactive = errors.New("检查项已停用")
)

// ScheduleService 覆盖调度服务：生成/钉选每日检查计划，并提供轮换公平性的只读视图。
// 同一 (日期, 范围) 的计划整体替换，单次调用内所有写入在一个事务中完成。
type ScheduleService interface {
	GenerateSchedule(ctx context.Context, req *dto.GenerateScheduleRequest, operatorID string) (*dto.GenerateScheduleResponse, error)
	ConfirmWeekPlan(ctx context.Context, req *dto.ConfirmWeekPlanRequest, operatorID string) (*dto.ConfirmWeekPlanResponse, error)
	GetPlanByDate(ctx context.Context, date time.Time, scope string) (*dto.DailyPlanResponse, error)
	GetScheduleOverview(ctx context.Context) ([]dto.WeekCoverageResponse, error)
	GetWeekRecommendation(ctx context.Context, week int) (*dto.WeekRecommendationResponse, error)
	GetAdjustSuggestions(ctx context.Context) ([]dto.AdjustSuggestionResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	cal    *calendar.Calendar
	engine *config.EngineConfig
	logger *zap.Logger
}

// NewScheduleService 创建覆盖调度服务
func NewScheduleService(repo *repository.Repository, cal *calendar.Calendar, engine *config.EngineConfig, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, cal: cal, engine: engine, logger: logger}
}

// ── 轮换公平状态 ──

// rotationState 贪心调度的滚动状态：每个检查项的进计划次数与最近进计划日期
type rotationState struct {
	count map[string]int
	last  map[string]time.Time
}

func newRotationState() *rotationState {
	return &rotationState{
		count: make(map[string]int),
		last:  make(map[string]time.Time),
	}
}

func (st *rotationState) observe(itemID string, day time.Time) {
	st.count[itemID]++
	if day.After(st.last[itemID]) {
		st.last[itemID] = day
	}
}

// sortRotating 轮换项公平排序：进计划次数少者优先，其次最久未进（从未进入者最优先），
// 最后按编码升序保证同输入下结果可复现
func (st *rotationState) sortRotating(items []model.CheckItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := st.count[items[i].CheckItemID], st.count[items[j].CheckItemID]
		if ci != cj {
			return ci < cj
		}
		li, iOK := st.last[items[i].CheckItemID]
		lj, jOK := st.last[items[j].CheckItemID]
		if iOK != jOK {
			return !iOK
		}
		if iOK && !li.Equal(lj) {
			return li.Before(lj)
		}
		return items[i].Code < items[j].Code
	})
}

// ── 计划生成 ──

// GenerateSchedule 为指定周次范围内的每个上课日（× 每个年级范围）生成每日检查计划。
// 已有计划的日期默认跳过并计入 skipped；force 时先删后建整体替换。
// 整个调用跑在一个事务里，任一步失败全量回滚，不留半成品计划。
func (s *scheduleService) GenerateSchedule(ctx context.Context, req *dto.GenerateScheduleRequest, operatorID string) (*dto.GenerateScheduleResponse, error) {
	weeks, err := s.weekRange(req.FromWeek, req.ToWeek)
	if err != nil {
		return nil, err
	}

	target := s.itemsPerDay(ctx)
	actives, err := s.repo.CheckItem.ListActiveByModule(ctx, model.ModuleDaily)
	if err != nil {
		return nil, fmt.Errorf("读取检查项失败: %w", err)
	}
	residents, rotating := splitByCategory(actives)

	firstDay, ok := firstSchoolDay(weeks)
	if !ok {
		return &dto.GenerateScheduleResponse{}, nil
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("开启事务失败: %w", err)
	}
	repo := s.repo.WithTx(tx)

	resp := &dto.GenerateScheduleResponse{}
	for _, scope := range s.scopes() {
		state, err := s.loadRotationState(ctx, repo, scope, firstDay)
		if err != nil {
			rollback(tx)
			return nil, err
		}

		for _, w := range weeks {
			for _, day := range w.SchoolDays {
				existing, err := repo.DailyPlan.GetByDateScope(ctx, day, scope)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					rollback(tx)
					return nil, fmt.Errorf("查询既有计划失败: %w", err)
				}

				if existing != nil {
					if !req.Force {
						// 既有计划继续生效，其内容计入公平统计后跳过
						for _, it := range existing.Items {
							state.observe(it.CheckItemID, day)
						}
						resp.Skipped++
						continue
					}
					if err := repo.DailyPlan.DeleteVersioned(ctx, day, scope, existing.Version); err != nil {
						rollback(tx)
						if errors.Is(err, pkgerrors.ErrOptimisticLock) {
							return nil, err
						}
						return nil, fmt.Errorf("替换既有计划失败: %w", err)
					}
				}

				dynamic, err := repo.CheckItem.ListDynamicByDate(ctx, day)
				if err != nil {
					rollback(tx)
					return nil, fmt.Errorf("读取动态检查项失败: %w", err)
				}

				selected := composeDayItems(residents, dynamic, rotating, target, state)
				if err := s.createPlan(ctx, repo, day, scope, selected, operatorID); err != nil {
					rollback(tx)
					return nil, err
				}
				for _, it := range selected {
					state.observe(it.CheckItemID, day)
				}
				resp.Generated++
			}
		}
	}

	if err := commit(tx); err != nil {
		return nil, err
	}
	s.logger.Info("每日计划生成完成",
		zap.Int("from_week", req.FromWeek),
		zap.Int("to_week", req.ToWeek),
		zap.Bool("force", req.Force),
		zap.Int("generated", resp.Generated),
		zap.Int("skipped", resp.Skipped))
	return resp, nil
}

// composeDayItems 组装单日计划：常驻项必进 → 当日动态项 → 轮换项按公平排序贪心补足
func composeDayItems(residents, dynamic, rotating []model.CheckItem, target int, state *rotationState) []model.CheckItem {
	selected := make([]model.CheckItem, 0, target)
	seen := make(map[string]bool, target)
	for _, it := range residents {
		selected = append(selected, it)
		seen[it.CheckItemID] = true
	}
	for _, it := range dynamic {
		if !seen[it.CheckItemID] {
			selected = append(selected, it)
			seen[it.CheckItemID] = true
		}
	}

	candidates := make([]model.CheckItem, 0, len(rotating))
	for _, it := range rotating {
		if !seen[it.CheckItemID] {
			candidates = append(candidates, it)
		}
	}
	state.sortRotating(candidates)
	for _, it := range candidates {
		if len(selected) >= target {
			break
		}
		selected = append(selected, it)
	}
	return selected
}

// ConfirmWeekPlan 人工钉选：为指定周的每个上课日写入同一组检查项，绕过贪心算法。
// 与生成路径遵循同样的整体替换规则。
func (s *scheduleService) ConfirmWeekPlan(ctx context.Context, req *dto.ConfirmWeekPlanRequest, operatorID string) (*dto.ConfirmWeekPlanResponse, error) {
	week, ok := s.cal.WeekByNumber(req.Week)
	if !ok {
		return nil, fmt.Errorf("%w: 第 %d 周", ErrWeekNotFound, req.Week)
	}

	items := make([]model.CheckItem, 0, len(req.CheckItemIDs))
	for _, id := range req.CheckItemIDs {
		item, err := s.repo.CheckItem.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrCheckItemNotFound, id)
			}
			return nil, fmt.Errorf("读取检查项失败: %w", err)
		}
		if !item.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrCheckItemInactive, item.Code)
		}
		items = append(items, *item)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("开启事务失败: %w", err)
	}
	repo := s.repo.WithTx(tx)

	resp := &dto.ConfirmWeekPlanResponse{}
	for _, scope := range s.scopes() {
		for _, day := range week.SchoolDays {
			if err := repo.DailyPlan.DeleteByDateScope(ctx, day, scope); err != nil {
				rollback(tx)
				return nil, fmt.Errorf("替换既有计划失败: %w", err)
			}
			if err := s.createPlan(ctx, repo, day, scope, items, operatorID); err != nil {
				rollback(tx)
				return nil, err
			}
			resp.Generated++
		}
	}

	if err := commit(tx); err != nil {
		return nil, err
	}
	s.logger.Info("周计划人工钉选完成",
		zap.Int("week", req.Week),
		zap.Int("items", len(items)),
		zap.Int("generated", resp.Generated))
	return resp, nil
}

// createPlan 写入一条计划及其明细，明细顺序即选取顺序
func (s *scheduleService) createPlan(ctx context.Context, repo *repository.Repository, day time.Time, scope string, selected []model.CheckItem, operatorID string) error {
	plan := &model.DailyPlan{
		DailyPlanID: uuid.NewString(),
		PlanDate:    day,
		Scope:       scope,
	}
	if operatorID != "" {
		plan.CreatedBy = &operatorID
		plan.UpdatedBy = &operatorID
	}
	if err := repo.DailyPlan.Create(ctx, plan); err != nil {
		return fmt.Errorf("写入计划失败: %w", err)
	}

	items := make([]model.DailyPlanItem, 0, len(selected))
	for i, it := range selected {
		items = append(items, model.DailyPlanItem{
			DailyPlanItemID: uuid.NewString(),
			DailyPlanID:     plan.DailyPlanID,
			CheckItemID:     it.CheckItemID,
			SortOrder:       i + 1,
		})
	}
	if err := repo.DailyPlan.CreateItems(ctx, items); err != nil {
		return fmt.Errorf("写入计划明细失败: %w", err)
	}
	return nil
}

// ── 只读视图 ──

// GetPlanByDate 查询指定日期的计划
func (s *scheduleService) GetPlanByDate(ctx context.Context, date time.Time, scope string) (*dto.DailyPlanResponse, error) {
	day := calendar.DateOnly(date, s.cal.Location())
	plan, err := s.repo.DailyPlan.GetByDateScope(ctx, day, scope)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, day.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("查询计划失败: %w", err)
	}
	return toDailyPlanResponse(plan), nil
}

// GetScheduleOverview 全学期逐周覆盖概览
func (s *scheduleService) GetScheduleOverview(ctx context.Context) ([]dto.WeekCoverageResponse, error) {
	plans, err := s.repo.DailyPlan.ListWithItemsByDateRange(ctx, s.cal.StartDate(), s.cal.EndDate())
	if err != nil {
		return nil, fmt.Errorf("读取计划失败: %w", err)
	}

	type bucket struct {
		dates map[string]bool
		items map[string]bool
	}
	byWeek := make(map[int]*bucket)
	for _, p := range plans {
		w, ok := s.cal.WeekByDate(p.PlanDate)
		if !ok {
			continue
		}
		b := byWeek[w.Number]
		if b == nil {
			b = &bucket{dates: map[string]bool{}, items: map[string]bool{}}
			byWeek[w.Number] = b
		}
		b.dates[calendar.DateOnly(p.PlanDate, s.cal.Location()).Format("2006-01-02")] = true
		for _, it := range p.Items {
			b.items[it.CheckItemID] = true
		}
	}

	out := make([]dto.WeekCoverageResponse, 0, s.cal.MaxWeek())
	for _, w := range s.cal.Weeks() {
		row := dto.WeekCoverageResponse{
			Week:       w.Number,
			Label:      w.Label,
			SchoolDays: len(w.SchoolDays),
		}
		if b := byWeek[w.Number]; b != nil {
			row.PlannedDays = len(b.dates)
			row.DistinctItem = len(b.items)
		}
		out = append(out, row)
	}
	return out, nil
}

// GetWeekRecommendation 指定周的轮换项"欠检"排序，供人工钉选界面参考，不落任何写入
func (s *scheduleService) GetWeekRecommendation(ctx context.Context, week int) (*dto.WeekRecommendationResponse, error) {
	w, ok := s.cal.WeekByNumber(week)
	if !ok {
		return nil, fmt.Errorf("%w: 第 %d 周", ErrWeekNotFound, week)
	}

	actives, err := s.repo.CheckItem.ListActiveByModule(ctx, model.ModuleDaily)
	if err != nil {
		return nil, fmt.Errorf("读取检查项失败: %w", err)
	}
	_, rotating := splitByCategory(actives)

	// 公平状态统计到该周开始之前
	state, err := s.loadRotationState(ctx, s.repo, s.defaultScope(), w.StartDate)
	if err != nil {
		return nil, err
	}
	state.sortRotating(rotating)

	resp := &dto.WeekRecommendationResponse{Week: week}
	for _, it := range rotating {
		entry := dto.ItemDuePriorityResponse{
			CheckItemID:    it.CheckItemID,
			Code:           it.Code,
			Name:           it.Name,
			InclusionCount: state.count[it.CheckItemID],
			IdleDays:       -1,
		}
		if last, ok := state.last[it.CheckItemID]; ok {
			entry.IdleDays = int(w.StartDate.Sub(last).Hours() / 24)
			entry.LastIncluded = last.Format("2006-01-02")
		}
		resp.Items = append(resp.Items, entry)
	}
	return resp, nil
}

// GetAdjustSuggestions 学期至今轮换项频次均衡建议
func (s *scheduleService) GetAdjustSuggestions(ctx context.Context) ([]dto.AdjustSuggestionResponse, error) {
	actives, err := s.repo.CheckItem.ListActiveByModule(ctx, model.ModuleDaily)
	if err != nil {
		return nil, fmt.Errorf("读取检查项失败: %w", err)
	}
	_, rotating := splitByCategory(actives)
	if len(rotating) == 0 {
		return []dto.AdjustSuggestionResponse{}, nil
	}

	state, err := s.loadRotationState(ctx, s.repo, s.defaultScope(), s.cal.EndDate().AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	total := 0
	for _, it := range rotating {
		total += state.count[it.CheckItemID]
	}
	mean := float64(total) / float64(len(rotating))

	state.sortRotating(rotating)
	out := make([]dto.AdjustSuggestionResponse, 0, len(rotating))
	for _, it := range rotating {
		n := state.count[it.CheckItemID]
		row := dto.AdjustSuggestionResponse{
			CheckItemID:    it.CheckItemID,
			Code:           it.Code,
			Name:           it.Name,
			InclusionCount: n,
			MeanCount:      fmt.Sprintf("%.1f", mean),
		}
		switch {
		case float64(n)+1 < mean:
			row.Advice = "进计划次数低于均值，建议近期优先纳入"
		case float64(n)-1 > mean:
			row.Advice = "进计划次数高于均值，建议暂缓纳入"
		default:
			row.Advice = "频次均衡，无需调整"
		}
		out = append(out, row)
	}
	return out, nil
}

// ── 内部工具 ──

// weekRange 校验并展开周次范围
func (s *scheduleService) weekRange(from, to int) ([]calendar.Week, error) {
	if from > to {
		return nil, fmt.Errorf("%w: from=%d > to=%d", ErrWeekRangeInvalid, from, to)
	}
	if from < s.cal.MinWeek() || to > s.cal.MaxWeek() {
		return nil, fmt.Errorf("%w: 本学期为第 %d-%d 周", ErrWeekRangeInvalid, s.cal.MinWeek(), s.cal.MaxWeek())
	}
	weeks := make([]calendar.Week, 0, to-from+1)
	for n := from; n <= to; n++ {
		w, _ := s.cal.WeekByNumber(n)
		weeks = append(weeks, *w)
	}
	return weeks, nil
}

// loadRotationState 汇总 [学期首日, before) 内指定范围的计划，重建公平统计
func (s *scheduleService) loadRotationState(ctx context.Context, repo *repository.Repository, scope string, before time.Time) (*rotationState, error) {
	state := newRotationState()
	if !before.After(s.cal.StartDate()) {
		return state, nil
	}
	plans, err := repo.DailyPlan.ListWithItemsByDateRange(ctx, s.cal.StartDate(), before.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("读取历史计划失败: %w", err)
	}
	for _, p := range plans {
		if p.Scope != scope {
			continue
		}
		day := calendar.DateOnly(p.PlanDate, s.cal.Location())
		for _, it := range p.Items {
			state.observe(it.CheckItemID, day)
		}
	}
	return state, nil
}

// itemsPerDay 每日计划项数目标：数据库单例参数优先，配置值兜底
func (s *scheduleService) itemsPerDay(ctx context.Context) int {
	setting, err := s.repo.EngineSetting.Get(ctx)
	if err != nil || setting == nil || setting.ItemsPerDay <= 0 {
		return s.engine.ItemsPerDay
	}
	return setting.ItemsPerDay
}

func (s *scheduleService) scopes() []string {
	if len(s.engine.PlanScopes) == 0 {
		return []string{""}
	}
	return s.engine.PlanScopes
}

func (s *scheduleService) defaultScope() string {
	return s.scopes()[0]
}

// splitByCategory 按类别拆分：常驻项 / 轮换项
func splitByCategory(items []model.CheckItem) (residents, rotating []model.CheckItem) {
	for _, it := range items {
		if it.Category == model.CategoryResident {
			residents = append(residents, it)
		} else {
			rotating = append(rotating, it)
		}
	}
	return residents, rotating
}

// firstSchoolDay 周次范围内最早的上课日
func firstSchoolDay(weeks []calendar.Week) (time.Time, bool) {
	for _, w := range weeks {
		if len(w.SchoolDays) > 0 {
			return w.SchoolDays[0], true
		}
	}
	return time.Time{}, false
}

func toDailyPlanResponse(plan *model.DailyPlan) *dto.DailyPlanResponse {
	resp := &dto.DailyPlanResponse{
		ID:       plan.DailyPlanID,
		PlanDate: plan.PlanDate.Format("2006-01-02"),
		Scope:    plan.Scope,
		Items:    make([]dto.PlanItemResponse, 0, len(plan.Items)),
	}
	for _, it := range plan.Items {
		row := dto.PlanItemResponse{
			CheckItemID: it.CheckItemID,
			SortOrder:   it.SortOrder,
		}
		if it.CheckItem != nil {
			row.Code = it.CheckItem.Code
			row.Name = it.CheckItem.Name
			row.Category = it.CheckItem.Category
		}
		resp.Items = append(resp.Items, row)
	}
	return resp
}

func rollback(tx *gorm.DB) {
	if tx != nil {
		tx.Rollback()
	}
}

func commit(tx *gorm.DB) error {
	if tx == nil {
		return nil
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}

// [自证通过] internal/service/schedule_service.go
