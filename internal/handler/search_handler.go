package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hitoshi/nutribud/internal/model"
)

// FoodSearcherInterface は検索ハンドラーが必要とするテキスト検索インターフェース。
type FoodSearcherInterface interface {
	Search(ctx context.Context, query string) ([]model.FoodHint, error)
}

// BarcodeLookupInterface は検索ハンドラーが必要とするバーコード検索インターフェース。
// 未登録バーコードは(nil, nil)を返す。
type BarcodeLookupInterface interface {
	Product(ctx context.Context, barcode string) (*model.BarcodeProduct, error)
}

// SearchHandler は外部栄養プロバイダへのパススルー検索のHTTPハンドラー。
// どちらのエンドポイントも認証不要。
type SearchHandler struct {
	searcher FoodSearcherInterface
	barcodes BarcodeLookupInterface
}

// NewSearchHandler はSearchHandlerを生成する。
func NewSearchHandler(searcher FoodSearcherInterface, barcodes BarcodeLookupInterface) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		barcodes: barcodes,
	}
}

// SearchText は食品名でフードカタログを検索し、候補ヒントを返す。
// GET /search-text?item=
func (h *SearchHandler) SearchText(w http.ResponseWriter, r *http.Request) {
	item := r.URL.Query().Get("item")
	if item == "" {
		writeError(w, model.NewValidationError("Missing item parameter"))
		return
	}

	hints, err := h.searcher.Search(r.Context(), item)
	if err != nil {
		writeError(w, model.NewUpstreamProviderError("Food search is currently unavailable."))
		return
	}
	if len(hints) == 0 {
		writeError(w, model.NewValidationError(fmt.Sprintf("No results found for %s", item)))
		return
	}

	writeResponse(w, http.StatusOK, hints)
}

// SearchBarcode はバーコードで商品を検索し、プロバイダの生フィールドを返す。
// GET /search-barcode?barcode=
func (h *SearchHandler) SearchBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := r.URL.Query().Get("barcode")
	if barcode == "" {
		writeError(w, model.NewValidationError("Missing barcode parameter"))
		return
	}

	product, err := h.barcodes.Product(r.Context(), barcode)
	if err != nil {
		writeError(w, model.NewUpstreamProviderError("Barcode lookup is currently unavailable."))
		return
	}
	if product == nil {
		writeError(w, model.NewNotFoundError(fmt.Sprintf("No product with barcode %s found", barcode)))
		return
	}

	writeResponse(w, http.StatusOK, product)
}
