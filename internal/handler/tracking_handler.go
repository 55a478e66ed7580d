package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/nutribud/internal/middleware"
	"github.com/hitoshi/nutribud/internal/model"
)

// TrackingServiceInterface はトラッキングハンドラーが必要とするサービスインターフェース。
type TrackingServiceInterface interface {
	Track(ctx context.Context, userID int64, rawItem json.RawMessage, amountGrams int) error
	ListForDate(ctx context.Context, userID int64, date string) ([]*model.TrackingEntry, error)
}

// TrackingHandler は食品トラッキングのHTTPハンドラー。
type TrackingHandler struct {
	service TrackingServiceInterface
}

// NewTrackingHandler はTrackingHandlerを生成する。
func NewTrackingHandler(service TrackingServiceInterface) *TrackingHandler {
	return &TrackingHandler{
		service: service,
	}
}

type trackRequest struct {
	ItemInfo json.RawMessage `json:"itemInfo"`
	Amount   int             `json:"amount"`
}

// Track はアイテムを正規化してユーザーの履歴に記録する。
// POST /tracking
func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("Invalid request body."))
		return
	}

	if err := h.service.Track(r.Context(), userID, req.ItemInfo, req.Amount); err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "Item track success!")
}

// List は指定日のトラッキング履歴を返す。
// GET /tracking?date=
func (h *TrackingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	entries, err := h.service.ListForDate(r.Context(), userID, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, entries)
}
