package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/model"
	"class-inspect/backend/internal/repository"
)

func newSettingTestEnv(t *testing.T) (SettingService, *mockEngineSettingRepo) {
	t.Helper()
	settings := &mockEngineSettingRepo{
		setting: &model.EngineSetting{
			Singleton:          true,
			ItemsPerDay:        6,
			RecommendThreshold: 0.3,
			UpdatedAt:          time.Now(),
		},
	}
	repo := &repository.Repository{
		SchoolWeek:    &mockSchoolWeekRepo{},
		CheckItem:     &mockCheckItemRepo{},
		DailyPlan:     &mockDailyPlanRepo{plans: map[string]*model.DailyPlan{}},
		CheckRecord:   &mockCheckRecordRepo{},
		EngineSetting: settings,
	}
	return NewSettingService(repo, zap.NewNop()), settings
}

func TestSettingGetAndUpdate(t *testing.T) {
	svc, settings := newSettingTestEnv(t)
	ctx := context.Background()

	resp, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if resp.ItemsPerDay != 6 || resp.RecommendThreshold != 0.3 {
		t.Errorf("期望默认参数 6/0.3, got %+v", resp)
	}

	// 部分更新：只动 items_per_day，阈值保持原值
	n := 8
	resp, err = svc.Update(ctx, &dto.UpdateEngineSettingRequest{ItemsPerDay: &n}, "op-1")
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if resp.ItemsPerDay != 8 || resp.RecommendThreshold != 0.3 {
		t.Errorf("期望 8/0.3, got %+v", resp)
	}
	if settings.setting.ItemsPerDay != 8 {
		t.Error("更新应落到存储")
	}
	if settings.setting.UpdatedBy == nil || *settings.setting.UpdatedBy != "op-1" {
		t.Error("更新应记录操作人")
	}
}
