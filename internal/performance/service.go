// Package performance はデイリーパフォーマンススコアのドメインロジックを提供する。
package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/hitoshi/nutribud/internal/model"
	"github.com/hitoshi/nutribud/internal/repository"
)

// Service はパフォーマンススコアのサービス層。
type Service struct {
	repo repository.PerformanceRepository

	// テストで時計を差し替えるためのフック
	now func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.PerformanceRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record は(user, date)をキーにスコアを記録する。既存行があれば上書きする。
// スコア0は「未指定」として拒否される（元実装の挙動を踏襲、0を正当なスコアと
// するかは未解決の仕様判断）。dateを省略すると当日扱いになる。
func (s *Service) Record(ctx context.Context, userID int64, score int, date string) error {
	if score == 0 {
		return model.NewValidationError("Missing score")
	}

	day, err := s.resolveDay(date)
	if err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, userID, day, score); err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// History はパフォーマンス履歴を返す。
// dateとallTimeは排他で、両方指定は拒否、どちらも未指定なら当日のスコアを返す。
// allTimeは全(date, score)を日付昇順の{day, value}ペアで返す。
func (s *Service) History(ctx context.Context, userID int64, date string, allTime bool) ([]model.PerformancePoint, error) {
	if date != "" && allTime {
		return nil, model.NewConflictingParametersError()
	}

	if allTime {
		scores, err := s.repo.ListAll(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list scores: %w", err)
		}
		if len(scores) == 0 {
			return nil, model.NewNotFoundError("No performance history found.")
		}
		points := make([]model.PerformancePoint, 0, len(scores))
		for _, score := range scores {
			points = append(points, toPoint(score))
		}
		return points, nil
	}

	day, err := s.resolveDay(date)
	if err != nil {
		return nil, err
	}

	score, err := s.repo.FindByDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to find score: %w", err)
	}
	if score == nil {
		return nil, model.NewNotFoundError("No performance history found.")
	}

	return []model.PerformancePoint{toPoint(score)}, nil
}

// resolveDay は日付文字列を解釈する。空なら現在の暦日を返す。
func (s *Service) resolveDay(date string) (time.Time, error) {
	if date == "" {
		return s.now(), nil
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, model.NewValidationError("Invalid date format, expected YYYY-MM-DD.")
	}
	return day, nil
}

func toPoint(score *model.PerformanceScore) model.PerformancePoint {
	return model.PerformancePoint{
		Day:   score.Day.Format("2006-01-02"),
		Value: score.Score,
	}
}
