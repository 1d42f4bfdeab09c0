package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"class-inspect/backend/internal/model"
	pkgerrors "class-inspect/backend/pkg/errors"
)

// DailyPlanRepository 每日检查计划数据访问接口
type DailyPlanRepository interface {
	Create(ctx context.Context, plan *model.DailyPlan) error
	CreateItems(ctx context.Context, items []model.DailyPlanItem) error
	GetByDateScope(ctx context.Context, date time.Time, scope string) (*model.DailyPlan, error)
	ListWithItemsByDateRange(ctx context.Context, from, to time.Time) ([]model.DailyPlan, error)
	DeleteByDateScope(ctx context.Context, date time.Time, scope string) error
	DeleteVersioned(ctx context.Context, date time.Time, scope string, version int) error
}

type dailyPlanRepo struct {
	db *gorm.DB
}

func NewDailyPlanRepo(db *gorm.DB) DailyPlanRepository {
	return &dailyPlanRepo{db: db}
}

func (r *dailyPlanRepo) Create(ctx context.Context, plan *model.DailyPlan) error {
	return r.db.WithContext(ctx).Omit("Items").Create(plan).Error
}

func (r *dailyPlanRepo) CreateItems(ctx context.Context, items []model.DailyPlanItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *dailyPlanRepo) GetByDateScope(ctx context.Context, date time.Time, scope string) (*model.DailyPlan, error) {
	var plan model.DailyPlan
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Items.CheckItem").
		Where("plan_date = ? AND scope = ?", date.Format("2006-01-02"), scope).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListWithItemsByDateRange [from, to] 闭区间内的全部计划（含明细），按日期升序
func (r *dailyPlanRepo) ListWithItemsByDateRange(ctx context.Context, from, to time.Time) ([]model.DailyPlan, error) {
	var plans []model.DailyPlan
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Items.CheckItem").
		Where("plan_date >= ? AND plan_date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("plan_date ASC").
		Find(&plans).Error
	return plans, err
}

// DeleteByDateScope 删除 (日期, 范围) 的计划；明细由外键级联删除
func (r *dailyPlanRepo) DeleteByDateScope(ctx context.Context, date time.Time, scope string) error {
	return r.db.WithContext(ctx).
		Where("plan_date = ? AND scope = ?", date.Format("2006-01-02"), scope).
		Delete(&model.DailyPlan{}).Error
}

// DeleteVersioned 带乐观锁的整体替换删除：版本不匹配说明计划已被并发修改
func (r *dailyPlanRepo) DeleteVersioned(ctx context.Context, date time.Time, scope string, version int) error {
	result := r.db.WithContext(ctx).
		Where("plan_date = ? AND scope = ? AND version = ?", date.Format("2006-01-02"), scope, version).
		Delete(&model.DailyPlan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}
