// Package profile は栄養目標とユーザー属性のドメインロジックを提供する。
package profile

import (
	"context"
	"fmt"

	"github.com/hitoshi/nutribud/internal/model"
	"github.com/hitoshi/nutribud/internal/repository"
)

// Service は栄養目標とユーザー属性のサービス層。
type Service struct {
	goals repository.GoalsRepository
	info  repository.UserInfoRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(goals repository.GoalsRepository, info repository.UserInfoRepository) *Service {
	return &Service{
		goals: goals,
		info:  info,
	}
}

// Goals は指定ユーザーの栄養目標を返す。
func (s *Service) Goals(ctx context.Context, userID int64) (*model.Goals, error) {
	goals, err := s.goals.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	if goals == nil {
		return nil, model.NewNotFoundError("No nutrition goals found.")
	}
	return goals, nil
}

// UpdateGoals は栄養目標を上書き更新する。全フィールド必須で、履歴は残らない。
func (s *Service) UpdateGoals(ctx context.Context, goals *model.Goals) error {
	if err := s.goals.Update(ctx, goals); err != nil {
		return fmt.Errorf("failed to update goals: %w", err)
	}
	return nil
}

// Info は指定ユーザーの属性を返す。
func (s *Service) Info(ctx context.Context, userID int64) (*model.UserInfo, error) {
	info, err := s.info.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	if info == nil {
		return nil, model.NewNotFoundError("No user info found.")
	}
	return info, nil
}

// CreateInfo はユーザー属性を作成する。1ユーザー1回の初回登録を想定する。
func (s *Service) CreateInfo(ctx context.Context, info *model.UserInfo) error {
	existing, err := s.info.FindByUserID(ctx, info.UserID)
	if err != nil {
		return fmt.Errorf("failed to check user info: %w", err)
	}
	if existing != nil {
		return model.NewValidationError("User info already exists.")
	}

	if err := s.info.Create(ctx, info); err != nil {
		return fmt.Errorf("failed to create user info: %w", err)
	}
	return nil
}

// UpdateInfo はage/weight/heightを更新する。属性が未登録の場合はNotFoundを返す。
func (s *Service) UpdateInfo(ctx context.Context, userID int64, age, weight, height int) error {
	existing, err := s.info.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user info: %w", err)
	}
	if existing == nil {
		return model.NewNotFoundError("No user info found.")
	}

	if err := s.info.Update(ctx, userID, age, weight, height); err != nil {
		return fmt.Errorf("failed to update user info: %w", err)
	}
	return nil
}
