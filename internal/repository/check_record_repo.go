package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"class-inspect/backend/internal/model"
)

// CheckRecordRepository 检查记录数据访问接口
// 记录的写入归评分流程（引擎外）所有，引擎侧只读
type CheckRecordRepository interface {
	ListByModuleAndDateRange(ctx context.Context, module string, from, to time.Time) ([]model.CheckRecord, error)
	ListByClassAndDateRange(ctx context.Context, classID string, from, to time.Time) ([]model.CheckRecord, error)
}

type checkRecordRepo struct {
	db *gorm.DB
}

func NewCheckRecordRepo(db *gorm.DB) CheckRecordRepository {
	return &checkRecordRepo{db: db}
}

func (r *checkRecordRepo) ListByModuleAndDateRange(ctx context.Context, module string, from, to time.Time) ([]model.CheckRecord, error) {
	var records []model.CheckRecord
	err := r.db.WithContext(ctx).
		Preload("CheckItem").
		Joins("JOIN check_items ON check_items.check_item_id = check_records.check_item_id").
		Where("check_items.module = ?", module).
		Where("check_records.record_date >= ? AND check_records.record_date <= ?",
			from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("check_records.record_date ASC").
		Find(&records).Error
	return records, err
}

func (r *checkRecordRepo) ListByClassAndDateRange(ctx context.Context, classID string, from, to time.Time) ([]model.CheckRecord, error) {
	var records []model.CheckRecord
	err := r.db.WithContext(ctx).
		Preload("CheckItem").
		Where("class_id = ?", classID).
		Where("record_date >= ? AND record_date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("record_date ASC").
		Find(&records).Error
	return records, err
}
