package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/model"
	"class-inspect/backend/internal/repository"
)

func newCheckItemTestEnv(t *testing.T) (CheckItemService, *mockCheckItemRepo) {
	t.Helper()
	items := &mockCheckItemRepo{recordedIDs: map[string]bool{}}
	repo := &repository.Repository{
		SchoolWeek:    &mockSchoolWeekRepo{},
		CheckItem:     items,
		DailyPlan:     &mockDailyPlanRepo{plans: map[string]*model.DailyPlan{}},
		CheckRecord:   &mockCheckRecordRepo{},
		EngineSetting: &mockEngineSettingRepo{},
	}
	return NewCheckItemService(repo, testEngineConfig(6), zap.NewNop()), items
}

func TestCheckItemCreate(t *testing.T) {
	svc, _ := newCheckItemTestEnv(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateCheckItemRequest{
		Module:   model.ModuleDaily,
		Code:     "D-3",
		Name:     "课间纪律",
		Category: model.CategoryRotating,
	}, "op-1")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if resp.ID == "" || !resp.IsActive {
		t.Errorf("新建检查项应有 ID 且默认启用, got %+v", resp)
	}

	if _, err := svc.Create(ctx, &dto.CreateCheckItemRequest{
		Module:   model.ModuleDaily,
		Code:     "D-3",
		Name:     "重复编码",
		Category: model.CategoryRotating,
	}, "op-1"); !errors.Is(err, ErrCheckItemCodeExists) {
		t.Errorf("重复编码应返回 ErrCheckItemCodeExists, got %v", err)
	}
}

func TestCheckItemCreateDynamicNeedsDate(t *testing.T) {
	svc, _ := newCheckItemTestEnv(t)

	_, err := svc.Create(context.Background(), &dto.CreateCheckItemRequest{
		Module:    model.ModuleDaily,
		Code:      "D-9",
		Name:      "临时专项",
		Category:  model.CategoryRotating,
		IsDynamic: true,
	}, "op-1")
	if !errors.Is(err, ErrDynamicItemNeedsDate) {
		t.Errorf("动态项缺日期应返回 ErrDynamicItemNeedsDate, got %v", err)
	}

	date := "2025-09-10"
	resp, err := svc.Create(context.Background(), &dto.CreateCheckItemRequest{
		Module:       model.ModuleDaily,
		Code:         "D-9",
		Name:         "临时专项",
		Category:     model.CategoryRotating,
		IsDynamic:    true,
		SpecificDate: &date,
	}, "op-1")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if resp.SpecificDate != date {
		t.Errorf("期望指定日期 %s, got %s", date, resp.SpecificDate)
	}
}

func TestCheckItemUpdateAndDeactivate(t *testing.T) {
	svc, items := newCheckItemTestEnv(t)
	ctx := context.Background()
	id := seedDailyItem(items, "D-2", model.CategoryRotating)

	name := "教室卫生"
	category := model.CategoryResident
	resp, err := svc.Update(ctx, id, &dto.UpdateCheckItemRequest{Name: &name, Category: &category}, "op-1")
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if resp.Name != name || resp.Category != category {
		t.Errorf("更新未生效, got %+v", resp)
	}

	if _, err := svc.Update(ctx, "missing", &dto.UpdateCheckItemRequest{Name: &name}, "op-1"); !errors.Is(err, ErrCheckItemNotFound) {
		t.Errorf("未知 ID 应返回 ErrCheckItemNotFound, got %v", err)
	}

	if err := svc.Deactivate(ctx, id, "op-1"); err != nil {
		t.Fatalf("停用失败: %v", err)
	}
	list, err := svc.List(ctx, model.ModuleDaily, true)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(list) != 1 || list[0].IsActive {
		t.Error("停用后 is_active 应为 false 且仍可查到")
	}
}

func TestCheckItemDeleteGuardedByRecords(t *testing.T) {
	svc, items := newCheckItemTestEnv(t)
	ctx := context.Background()
	withRecords := seedDailyItem(items, "D-2", model.CategoryRotating)
	clean := seedDailyItem(items, "D-3", model.CategoryRotating)
	items.recordedIDs[withRecords] = true

	if err := svc.Delete(ctx, withRecords); !errors.Is(err, ErrCheckItemHasRecords) {
		t.Errorf("有历史记录的检查项删除应被拒绝, got %v", err)
	}
	if err := svc.Delete(ctx, clean); err != nil {
		t.Fatalf("无记录检查项删除失败: %v", err)
	}
	if _, err := svc.Update(ctx, clean, &dto.UpdateCheckItemRequest{}, "op-1"); !errors.Is(err, ErrCheckItemNotFound) {
		t.Error("删除后应查不到该检查项")
	}
}
