package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/nutribud/internal/model"
)

// BarcodeClient はバーコード検索プロバイダ（OpenFoodFacts互換API）のクライアント。
type BarcodeClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    MetricsRecorder
	baseURL    string // テスト用にエンドポイントを差し替え可能
}

// NewBarcodeClient はBarcodeClientの新しいインスタンスを生成する。
func NewBarcodeClient(httpClient *http.Client, logger *slog.Logger, metrics MetricsRecorder, baseURL string) *BarcodeClient {
	return &BarcodeClient{
		httpClient: httpClient,
		logger:     logger,
		metrics:    metrics,
		baseURL:    baseURL,
	}
}

// productResponse はバーコードAPIのレスポンス。status 0は商品未登録を表す。
type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ImageURL    string         `json:"image_url"`
		Nutriments  map[string]any `json:"nutriments"`
		ServingSize string         `json:"serving_size"`
		ProductName string         `json:"product_name"`
		GenericName string         `json:"generic_name"`
	} `json:"product"`
}

// Product はバーコードで商品を検索する。
// プロバイダに登録がない場合は(nil, nil)を返す（エラーではない）。
func (c *BarcodeClient) Product(ctx context.Context, barcode string) (*model.BarcodeProduct, error) {
	start := time.Now()

	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Nutribud/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record("error", start)
		c.logger.Error("barcode API call failed",
			slog.String("error", err.Error()),
			slog.String("barcode", barcode),
		)
		return nil, fmt.Errorf("barcode lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.record("error", start)
		c.logger.Error("barcode API returned error status",
			slog.Int("http_status", resp.StatusCode),
			slog.String("barcode", barcode),
		)
		return nil, fmt.Errorf("barcode provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record("error", start)
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	var res productResponse
	if err := json.Unmarshal(body, &res); err != nil {
		c.record("error", start)
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}

	c.record("success", start)

	if res.Status == 0 {
		return nil, nil
	}

	return &model.BarcodeProduct{
		ProductImg:  res.Product.ImageURL,
		Nutriments:  res.Product.Nutriments,
		ServingSize: res.Product.ServingSize,
		Name:        res.Product.ProductName,
		GenericName: res.Product.GenericName,
	}, nil
}

func (c *BarcodeClient) record(outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordProviderCall("barcode", outcome)
	c.metrics.RecordProviderLatency("barcode", time.Since(start))
}
