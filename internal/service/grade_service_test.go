package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"class-inspect/backend/internal/dto"
)

func dailyInputs(passed, minorFail, moderateFail, seriousFail int) []dto.DailyRecordInput {
	var out []dto.DailyRecordInput
	for i := 0; i < passed; i++ {
		out = append(out, dto.DailyRecordInput{Passed: true})
	}
	for i := 0; i < minorFail; i++ {
		out = append(out, dto.DailyRecordInput{Passed: false, Severity: "minor"})
	}
	for i := 0; i < moderateFail; i++ {
		out = append(out, dto.DailyRecordInput{Passed: false, Severity: "moderate"})
	}
	for i := 0; i < seriousFail; i++ {
		out = append(out, dto.DailyRecordInput{Passed: false, Severity: "serious"})
	}
	return out
}

func allIndicators(value string) []dto.WeeklyIndicatorInput {
	return []dto.WeeklyIndicatorInput{
		{Code: "W-1", Value: value},
		{Code: "W-2", Value: value},
		{Code: "W-3", Value: value},
		{Code: "W-4", Value: value},
	}
}

func TestSuggestWeeklyGradeMatrix(t *testing.T) {
	svc := NewGradeService(zap.NewNop())

	cases := []struct {
		name       string
		req        *dto.WeeklyGradeRequest
		grade      string
		confidence string
		reasonSub  string
	}{
		{
			name: "严重不合格直接警示",
			req: &dto.WeeklyGradeRequest{
				DailyRecords:     dailyInputs(12, 0, 0, 1),
				WeeklyIndicators: allIndicators("0"),
			},
			grade:      GradeC,
			confidence: ConfidenceHigh,
			reasonSub:  "「严重」",
		},
		{
			name: "事件类周指标达 2 次警示",
			req: &dto.WeeklyGradeRequest{
				DailyRecords: dailyInputs(12, 0, 0, 0),
				WeeklyIndicators: []dto.WeeklyIndicatorInput{
					{Code: "W-1", Value: "0"},
					{Code: "W-2", Value: "gte2"},
					{Code: "W-3", Value: "0"},
					{Code: "W-4", Value: "0"},
				},
			},
			grade:      GradeC,
			confidence: ConfidenceHigh,
			reasonSub:  "W-2",
		},
		{
			name: "合格率 65% 仅因合格率警示",
			req: &dto.WeeklyGradeRequest{
				DailyRecords:     dailyInputs(13, 7, 0, 0),
				WeeklyIndicators: allIndicators("0"),
			},
			grade:      GradeC,
			confidence: ConfidenceHigh,
			reasonSub:  "65%",
		},
		{
			name: "户外活动缺勤从严警示",
			req: &dto.WeeklyGradeRequest{
				DailyRecords: dailyInputs(12, 0, 0, 0),
				WeeklyIndicators: []dto.WeeklyIndicatorInput{
					{Code: "W-1", Value: "0"},
					{Code: "W-2", Value: "0"},
					{Code: "W-3", Value: "0"},
					{Code: "W-4", Value: "gte2"},
				},
			},
			grade:      GradeC,
			confidence: ConfidenceHigh,
			reasonSub:  "缺勤",
		},
		{
			name: "全合格零指标评优",
			req: &dto.WeeklyGradeRequest{
				DailyRecords:     dailyInputs(10, 0, 0, 0),
				WeeklyIndicators: allIndicators("0"),
			},
			grade:      GradeA,
			confidence: ConfidenceHigh,
			reasonSub:  "100%",
		},
		{
			name: "指标发生一次降为平稳",
			req: &dto.WeeklyGradeRequest{
				DailyRecords: dailyInputs(12, 0, 0, 0),
				WeeklyIndicators: []dto.WeeklyIndicatorInput{
					{Code: "W-1", Value: "1"},
					{Code: "W-2", Value: "0"},
					{Code: "W-3", Value: "0"},
					{Code: "W-4", Value: "0"},
				},
			},
			grade:      GradeB,
			confidence: ConfidenceHigh,
			reasonSub:  "1 次",
		},
		{
			name: "中等不合格不评优",
			req: &dto.WeeklyGradeRequest{
				DailyRecords:     dailyInputs(19, 0, 1, 0),
				WeeklyIndicators: allIndicators("0"),
			},
			grade:      GradeB,
			confidence: ConfidenceHigh,
			reasonSub:  "中等",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.SuggestWeeklyGrade(context.Background(), tc.req)
			if err != nil {
				t.Fatalf("判定失败: %v", err)
			}
			if resp.Grade != tc.grade {
				t.Errorf("期望等级 %s, got %s（理由: %s）", tc.grade, resp.Grade, resp.Reason)
			}
			if resp.Confidence != tc.confidence {
				t.Errorf("期望置信度 %s, got %s", tc.confidence, resp.Confidence)
			}
			if !strings.Contains(resp.Reason, tc.reasonSub) {
				t.Errorf("理由应包含 %q, got %q", tc.reasonSub, resp.Reason)
			}
		})
	}
}

// 警示理由须列举全部命中条件，而非只报第一条
func TestSuggestWeeklyGradeEnumeratesAllReasons(t *testing.T) {
	svc := NewGradeService(zap.NewNop())
	resp, err := svc.SuggestWeeklyGrade(context.Background(), &dto.WeeklyGradeRequest{
		DailyRecords: dailyInputs(6, 3, 0, 1), // 合格率 60% 且含严重不合格
		WeeklyIndicators: []dto.WeeklyIndicatorInput{
			{Code: "W-1", Value: "gte2"},
			{Code: "W-2", Value: "0"},
			{Code: "W-3", Value: "0"},
			{Code: "W-4", Value: "0"},
		},
	})
	if err != nil {
		t.Fatalf("判定失败: %v", err)
	}
	if resp.Grade != GradeC {
		t.Fatalf("期望等级 C, got %s", resp.Grade)
	}
	for _, sub := range []string{"「严重」", "W-1", "60%"} {
		if !strings.Contains(resp.Reason, sub) {
			t.Errorf("理由应同时列举 %q, got %q", sub, resp.Reason)
		}
	}
}

func TestSuggestWeeklyGradeConfidence(t *testing.T) {
	svc := NewGradeService(zap.NewNop())

	cases := []struct {
		name       string
		daily      int
		indicators int
		confidence string
	}{
		{"记录充分指标齐全", 10, 4, ConfidenceHigh},
		{"记录不足十条降一级", 8, 4, ConfidenceMedium},
		{"记录不足五条降两级", 4, 4, ConfidenceLow},
		{"指标缺失额外降一级", 10, 3, ConfidenceMedium},
		{"双重不足封底为低", 4, 2, ConfidenceLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inds := allIndicators("0")[:tc.indicators]
			resp, err := svc.SuggestWeeklyGrade(context.Background(), &dto.WeeklyGradeRequest{
				DailyRecords:     dailyInputs(tc.daily, 0, 0, 0),
				WeeklyIndicators: inds,
			})
			if err != nil {
				t.Fatalf("判定失败: %v", err)
			}
			if resp.Confidence != tc.confidence {
				t.Errorf("期望置信度 %s, got %s", tc.confidence, resp.Confidence)
			}
		})
	}
}

// 零合格率叠加事件指标：必为 C，置信度受数据充分性规则约束
func TestSuggestWeeklyGradeWorstCase(t *testing.T) {
	svc := NewGradeService(zap.NewNop())
	resp, err := svc.SuggestWeeklyGrade(context.Background(), &dto.WeeklyGradeRequest{
		DailyRecords: dailyInputs(0, 3, 0, 0),
		WeeklyIndicators: []dto.WeeklyIndicatorInput{
			{Code: "W-1", Value: "gte2"},
			{Code: "W-2", Value: "0"},
			{Code: "W-3", Value: "0"},
			{Code: "W-4", Value: "0"},
		},
	})
	if err != nil {
		t.Fatalf("判定失败: %v", err)
	}
	if resp.Grade != GradeC {
		t.Errorf("期望等级 C, got %s", resp.Grade)
	}
	if resp.Confidence != ConfidenceLow {
		t.Errorf("仅 3 条记录置信度应为 low, got %s", resp.Confidence)
	}
}
