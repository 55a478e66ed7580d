// Package provider は外部栄養データプロバイダのHTTPクライアントを提供する。
// テキスト検索（フードカタログ）とバーコード検索の2系統を含む。
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hitoshi/nutribud/internal/model"
)

// MetricsRecorder はプロバイダ呼び出しのメトリクス記録インターフェース。
// nilの場合は記録しない。
type MetricsRecorder interface {
	RecordProviderCall(provider string, outcome string)
	RecordProviderLatency(provider string, duration time.Duration)
}

// FoodParserClient はテキスト検索プロバイダ（フードカタログAPI）のクライアント。
// 検索は軽量なヒントのみを返し、フルの栄養プロファイルはトラッキング時に
// カタログIDで再取得する。
type FoodParserClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    MetricsRecorder
	baseURL    string // テスト用にエンドポイントを差し替え可能
	apiKey     string
}

// NewFoodParserClient はFoodParserClientの新しいインスタンスを生成する。
func NewFoodParserClient(httpClient *http.Client, logger *slog.Logger, metrics MetricsRecorder, baseURL, apiKey string) *FoodParserClient {
	return &FoodParserClient{
		httpClient: httpClient,
		logger:     logger,
		metrics:    metrics,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// searchResponse はテキスト検索APIのレスポンス。
type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

// searchFood は検索結果1件。栄養値は英語ラベルでキーされる。
type searchFood struct {
	FdcID         int64            `json:"fdcId"`
	Description   string           `json:"description"`
	BrandOwner    string           `json:"brandOwner"`
	FoodNutrients []parserNutrient `json:"foodNutrients"`
}

type parserNutrient struct {
	NutrientName string  `json:"nutrientName"`
	Value        float64 `json:"value"`
}

// Search は食品名でフードカタログを検索し、候補ヒントのリストを返す。
// 候補が存在しない場合は空スライスを返す（エラーではない）。
func (c *FoodParserClient) Search(ctx context.Context, query string) ([]model.FoodHint, error) {
	var res searchResponse
	params := url.Values{}
	params.Set("query", query)
	if err := c.get(ctx, "/v1/foods/search", params, &res); err != nil {
		return nil, err
	}

	hints := make([]model.FoodHint, 0, len(res.Foods))
	for _, f := range res.Foods {
		hint := model.FoodHint{
			FdcID: f.FdcID,
			Name:  f.Description,
			Brand: f.BrandOwner,
		}
		for _, n := range f.FoodNutrients {
			if n.NutrientName == "Energy" {
				v := n.Value
				hint.Calories = &v
				break
			}
		}
		hints = append(hints, hint)
	}

	return hints, nil
}

// foodDetailResponse はカタログIDによる個別取得APIのレスポンス。
type foodDetailResponse struct {
	Description   string           `json:"description"`
	FoodNutrients []parserNutrient `json:"foodNutrients"`
}

// Nutrients はカタログIDでフルの栄養プロファイルを取得する。
// 100g基準の固定量で問い合わせ、英語ラベルをキーとする値マップを返す。
func (c *FoodParserClient) Nutrients(ctx context.Context, foodID int64) (string, map[string]float64, error) {
	var res foodDetailResponse
	params := url.Values{}
	params.Set("amount", "100")
	if err := c.get(ctx, fmt.Sprintf("/v1/food/%d", foodID), params, &res); err != nil {
		return "", nil, err
	}

	nutrients := make(map[string]float64, len(res.FoodNutrients))
	for _, n := range res.FoodNutrients {
		nutrients[n.NutrientName] = n.Value
	}

	return res.Description, nutrients, nil
}

// get はGETリクエストを実行し、レスポンスJSONをoutへデコードする。
func (c *FoodParserClient) get(ctx context.Context, path string, params url.Values, out any) error {
	start := time.Now()

	reqURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse provider URL: %w", err)
	}
	params.Set("api_key", c.apiKey)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Nutribud/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record("error", start)
		c.logger.Error("food parser API call failed",
			slog.String("error", err.Error()),
			slog.String("path", path),
		)
		return fmt.Errorf("food parser request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.record("error", start)
		c.logger.Error("food parser API returned error status",
			slog.Int("http_status", resp.StatusCode),
			slog.String("path", path),
		)
		return fmt.Errorf("food parser returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record("error", start)
		return fmt.Errorf("failed to read provider response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.record("error", start)
		return fmt.Errorf("failed to parse provider response: %w", err)
	}

	c.record("success", start)
	return nil
}

func (c *FoodParserClient) record(outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordProviderCall("food_parser", outcome)
	c.metrics.RecordProviderLatency("food_parser", time.Since(start))
}
