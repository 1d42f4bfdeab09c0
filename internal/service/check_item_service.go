package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"class-inspect/backend/config"
	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/model"
	"class-inspect/backend/internal/repository"
)

var (
	ErrCheckItemCodeExists  = errors.New("检查项编码已存在")
	ErrCheckItemHasRecords  = errors.New("检查项已有历史检查记录，仅允许停用")
	ErrDynamicItemNeedsDate = errors.New("动态检查项必须指定日期")
)

// CheckItemService 检查项管理服务。
// 有历史记录的检查项永不物理删除，统一走 is_active 软停用，保证历史统计口径不变。
type CheckItemService interface {
	Create(ctx context.Context, req *dto.CreateCheckItemRequest, operatorID string) (*dto.CheckItemResponse, error)
	List(ctx context.Context, module string, includeInactive bool) ([]dto.CheckItemResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCheckItemRequest, operatorID string) (*dto.CheckItemResponse, error)
	Deactivate(ctx context.Context, id, operatorID string) error
	Delete(ctx context.Context, id string) error
}

type checkItemService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewCheckItemService 创建检查项管理服务
func NewCheckItemService(repo *repository.Repository, engine *config.EngineConfig, logger *zap.Logger) CheckItemService {
	return &checkItemService{repo: repo, loc: engine.Location(), logger: logger}
}

func (s *checkItemService) Create(ctx context.Context, req *dto.CreateCheckItemRequest, operatorID string) (*dto.CheckItemResponse, error) {
	if _, err := s.repo.CheckItem.GetByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrCheckItemCodeExists, req.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询检查项失败: %w", err)
	}

	item := &model.CheckItem{
		CheckItemID: uuid.NewString(),
		Module:      req.Module,
		Code:        req.Code,
		Name:        req.Name,
		Category:    req.Category,
		IsDynamic:   req.IsDynamic,
		IsActive:    true,
	}
	if req.IsDynamic {
		if req.SpecificDate == nil {
			return nil, ErrDynamicItemNeedsDate
		}
		d, err := time.ParseInLocation("2006-01-02", *req.SpecificDate, s.loc)
		if err != nil {
			return nil, fmt.Errorf("指定日期格式无效: %w", err)
		}
		item.SpecificDate = &d
	}
	if operatorID != "" {
		item.CreatedBy = &operatorID
		item.UpdatedBy = &operatorID
	}

	if err := s.repo.CheckItem.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("创建检查项失败: %w", err)
	}
	s.logger.Info("检查项已创建", zap.String("code", item.Code), zap.String("category", item.Category))
	return toCheckItemResponse(item), nil
}

func (s *checkItemService) List(ctx context.Context, module string, includeInactive bool) ([]dto.CheckItemResponse, error) {
	items, err := s.repo.CheckItem.List(ctx, module, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("查询检查项失败: %w", err)
	}
	out := make([]dto.CheckItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *toCheckItemResponse(&items[i]))
	}
	return out, nil
}

func (s *checkItemService) Update(ctx context.Context, id string, req *dto.UpdateCheckItemRequest, operatorID string) (*dto.CheckItemResponse, error) {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.SpecificDate != nil {
		d, err := time.ParseInLocation("2006-01-02", *req.SpecificDate, s.loc)
		if err != nil {
			return nil, fmt.Errorf("指定日期格式无效: %w", err)
		}
		item.SpecificDate = &d
	}
	if operatorID != "" {
		item.UpdatedBy = &operatorID
	}

	if err := s.repo.CheckItem.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("更新检查项失败: %w", err)
	}
	return toCheckItemResponse(item), nil
}

// Deactivate 软停用：检查项退出后续调度与建议，历史记录与统计不受影响
func (s *checkItemService) Deactivate(ctx context.Context, id, operatorID string) error {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return err
	}
	item.IsActive = false
	if operatorID != "" {
		item.UpdatedBy = &operatorID
	}
	if err := s.repo.CheckItem.Update(ctx, item); err != nil {
		return fmt.Errorf("停用检查项失败: %w", err)
	}
	s.logger.Info("检查项已停用", zap.String("code", item.Code))
	return nil
}

// Delete 物理删除，仅限从未产生过检查记录的检查项；否则拒绝并提示改用停用
func (s *checkItemService) Delete(ctx context.Context, id string) error {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return err
	}
	has, err := s.repo.CheckItem.HasRecords(ctx, id)
	if err != nil {
		return fmt.Errorf("查询检查记录失败: %w", err)
	}
	if has {
		return fmt.Errorf("%w: %s", ErrCheckItemHasRecords, item.Code)
	}
	if err := s.repo.CheckItem.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除检查项失败: %w", err)
	}
	s.logger.Info("检查项已删除", zap.String("code", item.Code))
	return nil
}

func (s *checkItemService) getItem(ctx context.Context, id string) (*model.CheckItem, error) {
	item, err := s.repo.CheckItem.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCheckItemNotFound, id)
		}
		return nil, fmt.Errorf("查询检查项失败: %w", err)
	}
	return item, nil
}

func toCheckItemResponse(item *model.CheckItem) *dto.CheckItemResponse {
	resp := &dto.CheckItemResponse{
		ID:        item.CheckItemID,
		Module:    item.Module,
		Code:      item.Code,
		Name:      item.Name,
		Category:  item.Category,
		IsDynamic: item.IsDynamic,
		IsActive:  item.IsActive,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
	if item.SpecificDate != nil {
		resp.SpecificDate = item.SpecificDate.Format("2006-01-02")
	}
	return resp
}
