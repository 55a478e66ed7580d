// Package tracking は食品トラッキングのドメインロジックを提供する。
package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hitoshi/nutribud/internal/model"
	"github.com/hitoshi/nutribud/internal/nutrition"
	"github.com/hitoshi/nutribud/internal/repository"
)

// NutrientResolver はカタログIDからフル栄養プロファイルを取得するインターフェース。
// provider.FoodParserClientの部分集合として定義する。
type NutrientResolver interface {
	Nutrients(ctx context.Context, foodID int64) (string, map[string]float64, error)
}

// Service は食品トラッキングのサービス層。
type Service struct {
	repo   repository.TrackingRepository
	parser NutrientResolver

	// テストで時計を差し替えるためのフック
	now func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.TrackingRepository, parser NutrientResolver) *Service {
	return &Service{
		repo:   repo,
		parser: parser,
		now:    time.Now,
	}
}

// Track は生アイテムを正規化して記録する。
// テキスト検索由来（フードカタログIDあり）の場合は100g基準のフル栄養プロファイルを
// プロバイダに追加照会してから正規化する。カタログ行の再利用と履歴追加は
// リポジトリが同一トランザクションで行う。
func (s *Service) Track(ctx context.Context, userID int64, rawItem json.RawMessage, amountGrams int) error {
	if amountGrams <= 0 {
		return model.NewValidationError("Missing amount")
	}

	var payload map[string]any
	if err := json.Unmarshal(rawItem, &payload); err != nil || len(payload) == 0 {
		return model.NewValidationError("Missing item info")
	}

	raw, err := s.resolveRawItem(ctx, payload)
	if err != nil {
		return err
	}

	record := nutrition.Normalize(raw)
	itemInfo, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal nutrient record: %w", err)
	}

	if err := s.repo.Track(ctx, userID, itemInfo, amountGrams, s.now()); err != nil {
		return fmt.Errorf("failed to track item: %w", err)
	}

	return nil
}

// resolveRawItem はインジェスト境界でペイロードに由来タグを付け、
// 正規化の入力となるRawItemを組み立てる。
func (s *Service) resolveRawItem(ctx context.Context, payload map[string]any) (nutrition.RawItem, error) {
	switch nutrition.DetectProvenance(payload) {
	case nutrition.ProvenanceTextSearch:
		foodID, ok := payload["fdcId"].(float64)
		if !ok {
			return nutrition.RawItem{}, model.NewValidationError("Missing item info")
		}
		name, nutrients, err := s.parser.Nutrients(ctx, int64(foodID))
		if err != nil {
			return nutrition.RawItem{}, model.NewUpstreamProviderError("Could not resolve item nutrients.")
		}
		return nutrition.RawItem{
			Provenance: nutrition.ProvenanceTextSearch,
			Name:       name,
			Nutrients:  nutrients,
		}, nil

	default:
		name, _ := payload["name"].(string)
		nutrients := make(map[string]float64)
		if nm, ok := payload["nutriments"].(map[string]any); ok {
			for k, v := range nm {
				if f, ok := v.(float64); ok {
					nutrients[k] = f
				}
			}
		}
		return nutrition.RawItem{
			Provenance: nutrition.ProvenanceBarcode,
			Name:       name,
			Nutrients:  nutrients,
		}, nil
	}
}

// ListForDate は指定カレンダー日付のトラッキング履歴を時刻昇順で返す。
// 1件も記録がない日は空リストではなく「未トラッキング」のドメインエラーとして返す。
func (s *Service) ListForDate(ctx context.Context, userID int64, date string) ([]*model.TrackingEntry, error) {
	if date == "" {
		return nil, model.NewValidationError("Missing date")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, model.NewValidationError("Invalid date format, expected YYYY-MM-DD.")
	}

	entries, err := s.repo.ListByDate(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked items: %w", err)
	}
	if len(entries) == 0 {
		return nil, model.NewNotFoundError("User has not tracked any items on this date.")
	}

	return entries, nil
}
