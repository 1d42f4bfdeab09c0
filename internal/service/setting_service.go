package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"class-inspect/backend/internal/dto"
	"class-inspect/backend/internal/repository"
)

// SettingService 引擎运行参数服务（数据库单例行）
type SettingService interface {
	Get(ctx context.Context) (*dto.EngineSettingResponse, error)
	Update(ctx context.Context, req *dto.UpdateEngineSettingRequest, operatorID string) (*dto.EngineSettingResponse, error)
}

type settingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingService 创建引擎参数服务
func NewSettingService(repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{repo: repo, logger: logger}
}

func (s *settingService) Get(ctx context.Context) (*dto.EngineSettingResponse, error) {
	setting, err := s.repo.EngineSetting.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取引擎参数失败: %w", err)
	}
	return &dto.EngineSettingResponse{
		ItemsPerDay:        setting.ItemsPerDay,
		RecommendThreshold: setting.RecommendThreshold,
		UpdatedAt:          setting.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (s *settingService) Update(ctx context.Context, req *dto.UpdateEngineSettingRequest, operatorID string) (*dto.EngineSettingResponse, error) {
	setting, err := s.repo.EngineSetting.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取引擎参数失败: %w", err)
	}

	if req.ItemsPerDay != nil {
		setting.ItemsPerDay = *req.ItemsPerDay
	}
	if req.RecommendThreshold != nil {
		setting.RecommendThreshold = *req.RecommendThreshold
	}
	if operatorID != "" {
		setting.UpdatedBy = &operatorID
	}

	if err := s.repo.EngineSetting.Update(ctx, setting); err != nil {
		return nil, fmt.Errorf("更新引擎参数失败: %w", err)
	}
	s.logger.Info("引擎参数已更新",
		zap.Int("items_per_day", setting.ItemsPerDay),
		zap.Float64("recommend_threshold", setting.RecommendThreshold))
	return &dto.EngineSettingResponse{
		ItemsPerDay:        setting.ItemsPerDay,
		RecommendThreshold: setting.RecommendThreshold,
		UpdatedAt:          setting.UpdatedAt.Format(time.RFC3339),
	}, nil
}
