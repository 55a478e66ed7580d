package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/nutribud/internal/model"
)

// --- モック定義 ---

type mockFoodSearcher struct {
	searchFn func(ctx context.Context, query string) ([]model.FoodHint, error)
}

func (m *mockFoodSearcher) Search(ctx context.Context, query string) ([]model.FoodHint, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}

type mockBarcodeLookup struct {
	productFn func(ctx context.Context, barcode string) (*model.BarcodeProduct, error)
}

func (m *mockBarcodeLookup) Product(ctx context.Context, barcode string) (*model.BarcodeProduct, error) {
	if m.productFn != nil {
		return m.productFn(ctx, barcode)
	}
	return nil, nil
}

var _ FoodSearcherInterface = (*mockFoodSearcher)(nil)
var _ BarcodeLookupInterface = (*mockBarcodeLookup)(nil)

// --- SearchText ---

func TestSearchText_ReturnsHints(t *testing.T) {
	calories := 402.0
	searcher := &mockFoodSearcher{
		searchFn: func(ctx context.Context, query string) ([]model.FoodHint, error) {
			if query != "cheddar" {
				t.Errorf("query = %q, want %q", query, "cheddar")
			}
			return []model.FoodHint{
				{FdcID: 328637, Name: "Cheddar cheese", Brand: "Acme Dairy", Calories: &calories},
			}, nil
		},
	}
	h := NewSearchHandler(searcher, &mockBarcodeLookup{})

	req := httptest.NewRequest(http.MethodGet, "/search-text?item=cheddar", nil)
	rec := httptest.NewRecorder()

	h.SearchText(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Response []model.FoodHint `json:"response"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(body.Response) != 1 {
		t.Fatalf("len(response) = %d, want 1", len(body.Response))
	}
	if body.Response[0].Name != "Cheddar cheese" {
		t.Errorf("hint name = %q", body.Response[0].Name)
	}
}

func TestSearchText_MissingItemParam_Returns400(t *testing.T) {
	h := NewSearchHandler(&mockFoodSearcher{}, &mockBarcodeLookup{})

	req := httptest.NewRequest(http.MethodGet, "/search-text", nil)
	rec := httptest.NewRecorder()

	h.SearchText(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchText_ProviderError_Returns502(t *testing.T) {
	searcher := &mockFoodSearcher{
		searchFn: func(ctx context.Context, query string) ([]model.FoodHint, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := NewSearchHandler(searcher, &mockBarcodeLookup{})

	req := httptest.NewRequest(http.MethodGet, "/search-text?item=cheddar", nil)
	rec := httptest.NewRecorder()

	h.SearchText(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	assertErrorValue(t, rec, "Food search is currently unavailable.")
}

func TestSearchText_NoResults_ReturnsError(t *testing.T) {
	searcher := &mockFoodSearcher{
		searchFn: func(ctx context.Context, query string) ([]model.FoodHint, error) {
			return []model.FoodHint{}, nil
		},
	}
	h := NewSearchHandler(searcher, &mockBarcodeLookup{})

	req := httptest.NewRequest(http.MethodGet, "/search-text?item=xyzzy", nil)
	rec := httptest.NewRecorder()

	h.SearchText(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	assertErrorValue(t, rec, "No results found for xyzzy")
}

// --- SearchBarcode ---

func TestSearchBarcode_ReturnsProduct(t *testing.T) {
	lookup := &mockBarcodeLookup{
		productFn: func(ctx context.Context, barcode string) (*model.BarcodeProduct, error) {
			if barcode != "3017620422003" {
				t.Errorf("barcode = %q", barcode)
			}
			return &model.BarcodeProduct{
				Name:        "Hazelnut spread",
				ServingSize: "15 g",
				Nutriments:  map[string]any{"energy-kcal_100g": 539.0},
			}, nil
		},
	}
	h := NewSearchHandler(&mockFoodSearcher{}, lookup)

	req := httptest.NewRequest(http.MethodGet, "/search-barcode?barcode=3017620422003", nil)
	rec := httptest.NewRecorder()

	h.SearchBarcode(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Response model.BarcodeProduct `json:"response"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Response.Name != "Hazelnut spread" {
		t.Errorf("product name = %q", body.Response.Name)
	}
}

func TestSearchBarcode_MissingBarcodeParam_Returns400(t *testing.T) {
	h := NewSearchHandler(&mockFoodSearcher{}, &mockBarcodeLookup{})

	req := httptest.NewRequest(http.MethodGet, "/search-barcode", nil)
	rec := httptest.NewRecorder()

	h.SearchBarcode(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchBarcode_UnknownBarcode_Returns200WithError(t *testing.T) {
	lookup := &mockBarcodeLookup{
		productFn: func(ctx context.Context, barcode string) (*model.BarcodeProduct, error) {
			return nil, nil
		},
	}
	h := NewSearchHandler(&mockFoodSearcher{}, lookup)

	req := httptest.NewRequest(http.MethodGet, "/search-barcode?barcode=0000000000000", nil)
	rec := httptest.NewRecorder()

	h.SearchBarcode(rec, req)

	// ドメインの「該当なし」は互換性のため200で返る
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	assertErrorValue(t, rec, "No product with barcode 0000000000000 found")
}

func TestSearchBarcode_ProviderError_Returns502(t *testing.T) {
	lookup := &mockBarcodeLookup{
		productFn: func(ctx context.Context, barcode string) (*model.BarcodeProduct, error) {
			return nil, errors.New("timeout")
		},
	}
	h := NewSearchHandler(&mockFoodSearcher{}, lookup)

	req := httptest.NewRequest(http.MethodGet, "/search-barcode?barcode=3017620422003", nil)
	rec := httptest.NewRecorder()

	h.SearchBarcode(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	assertErrorValue(t, rec, "Barcode lookup is currently unavailable.")
}
