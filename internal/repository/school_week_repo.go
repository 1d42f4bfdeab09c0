package repository

import (
	"context"

	"gorm.io/gorm"

	"class-inspect/backend/internal/model"
)

// SchoolWeekRepository 校历周数据访问接口
type SchoolWeekRepository interface {
	ListBySemester(ctx context.Context, semester string) ([]model.SchoolWeek, error)
	ReplaceSemester(ctx context.Context, semester string, weeks []model.SchoolWeek) error
}

type schoolWeekRepo struct {
	db *gorm.DB
}

func NewSchoolWeekRepo(db *gorm.DB) SchoolWeekRepository {
	return &schoolWeekRepo{db: db}
}

func (r *schoolWeekRepo) ListBySemester(ctx context.Context, semester string) ([]model.SchoolWeek, error) {
	var weeks []model.SchoolWeek
	err := r.db.WithContext(ctx).
		Where("semester = ?", semester).
		Order("week_number ASC").
		Find(&weeks).Error
	return weeks, err
}

// ReplaceSemester 整学期替换校历数据（部署期数据导入用，运行期不调用）
func (r *schoolWeekRepo) ReplaceSemester(ctx context.Context, semester string, weeks []model.SchoolWeek) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("semester = ?", semester).Delete(&model.SchoolWeek{}).Error; err != nil {
			return err
		}
		if len(weeks) == 0 {
			return nil
		}
		return tx.Create(&weeks).Error
	})
}
