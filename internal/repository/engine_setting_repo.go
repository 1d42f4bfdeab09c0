package repository

import (
	"context"

	"gorm.io/gorm"

	"class-inspect/backend/internal/model"
)

// EngineSettingRepository 引擎参数单例数据访问接口
type EngineSettingRepository interface {
	Get(ctx context.Context) (*model.EngineSetting, error)
	Update(ctx context.Context, setting *model.EngineSetting) error
}

type engineSettingRepo struct {
	db *gorm.DB
}

func NewEngineSettingRepo(db *gorm.DB) EngineSettingRepository {
	return &engineSettingRepo{db: db}
}

func (r *engineSettingRepo) Get(ctx context.Context) (*model.EngineSetting, error) {
	var setting model.EngineSetting
	err := r.db.WithContext(ctx).
		Where("singleton = ?", true).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *engineSettingRepo) Update(ctx context.Context, setting *model.EngineSetting) error {
	return r.db.WithContext(ctx).
		Model(&model.EngineSetting{}).
		Where("singleton = ?", true).
		Updates(map[string]interface{}{
			"items_per_day":       setting.ItemsPerDay,
			"recommend_threshold": setting.RecommendThreshold,
			"updated_by":          setting.UpdatedBy,
		}).Error
}
