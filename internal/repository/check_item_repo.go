package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"class-inspect/backend/internal/model"
)

// CheckItemRepository 检查项数据访问接口
type CheckItemRepository interface {
	Create(ctx context.Context, item *model.CheckItem) error
	GetByID(ctx context.Context, id string) (*model.CheckItem, error)
	GetByCode(ctx context.Context, code string) (*model.CheckItem, error)
	List(ctx context.Context, module string, includeInactive bool) ([]model.CheckItem, error)
	ListActiveByModule(ctx context.Context, module string) ([]model.CheckItem, error)
	ListDynamicByDate(ctx context.Context, date time.Time) ([]model.CheckItem, error)
	Update(ctx context.Context, item *model.CheckItem) error
	Delete(ctx context.Context, id string) error
	HasRecords(ctx context.Context, id string) (bool, error)
}

type checkItemRepo struct {
	db *gorm.DB
}

func NewCheckItemRepo(db *gorm.DB) CheckItemRepository {
	return &checkItemRepo{db: db}
}

func (r *checkItemRepo) Create(ctx context.Context, item *model.CheckItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *checkItemRepo) GetByID(ctx context.Context, id string) (*model.CheckItem, error) {
	var item model.CheckItem
	err := r.db.WithContext(ctx).
		Where("check_item_id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *checkItemRepo) GetByCode(ctx context.Context, code string) (*model.CheckItem, error) {
	var item model.CheckItem
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *checkItemRepo) List(ctx context.Context, module string, includeInactive bool) ([]model.CheckItem, error) {
	var items []model.CheckItem
	db := r.db.WithContext(ctx)
	if module != "" {
		db = db.Where("module = ?", module)
	}
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("code ASC").Find(&items).Error
	return items, err
}

// ListActiveByModule 启用的非动态检查项（常驻 + 轮换），按编码升序
func (r *checkItemRepo) ListActiveByModule(ctx context.Context, module string) ([]model.CheckItem, error) {
	var items []model.CheckItem
	err := r.db.WithContext(ctx).
		Where("module = ? AND is_active = ? AND is_dynamic = ?", module, true, false).
		Order("code ASC").
		Find(&items).Error
	return items, err
}

// ListDynamicByDate 指定日期的启用动态检查项
func (r *checkItemRepo) ListDynamicByDate(ctx context.Context, date time.Time) ([]model.CheckItem, error) {
	var items []model.CheckItem
	err := r.db.WithContext(ctx).
		Where("is_dynamic = ? AND is_active = ? AND specific_date = ?", true, true, date.Format("2006-01-02")).
		Order("code ASC").
		Find(&items).Error
	return items, err
}

func (r *checkItemRepo) Update(ctx context.Context, item *model.CheckItem) error {
	return r.db.WithContext(ctx).
		Model(item).
		Where("check_item_id = ?", item.CheckItemID).
		Updates(map[string]interface{}{
			"name":          item.Name,
			"category":      item.Category,
			"specific_date": item.SpecificDate,
			"is_active":     item.IsActive,
			"updated_by":    item.UpdatedBy,
		}).Error
}

// Delete 物理删除检查项；仅允许删除从未产生过检查记录的项，调用方先经 HasRecords 把关
func (r *checkItemRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("check_item_id = ?", id).
		Delete(&model.CheckItem{}).Error
}

// HasRecords 检查项是否已产生历史检查记录（有则只允许软停用）
func (r *checkItemRepo) HasRecords(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CheckRecord{}).
		Where("check_item_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
