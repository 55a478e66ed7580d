package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/nutribud/internal/middleware"
	"github.com/hitoshi/nutribud/internal/model"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	Goals(ctx context.Context, userID int64) (*model.Goals, error)
	UpdateGoals(ctx context.Context, goals *model.Goals) error
	Info(ctx context.Context, userID int64) (*model.UserInfo, error)
	CreateInfo(ctx context.Context, info *model.UserInfo) error
	UpdateInfo(ctx context.Context, userID int64, age, weight, height int) error
}

// ProfileHandler は栄養目標とユーザー属性のHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// GetGoals はユーザーの栄養目標を返す。
// フロントエンド互換のため1行を配列に包んで返す。
// GET /goals
func (h *ProfileHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	goals, err := h.service.Goals(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, []*model.Goals{goals})
}

// updateGoalsRequest の各フィールドはポインタで受け、欠損を検知する。
// 部分更新はサポートしない。
type updateGoalsRequest struct {
	Calories *int `json:"calories"`
	Protein  *int `json:"protein"`
	Carbs    *int `json:"carbs"`
	Fats     *int `json:"fats"`
	Sugar    *int `json:"sugar"`
	Salt     *int `json:"salt"`
	Fiber    *int `json:"fiber"`
}

// UpdateGoals は栄養目標を全フィールド指定で上書きする。
// PATCH /goals
func (h *ProfileHandler) UpdateGoals(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	var req updateGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("Invalid request body."))
		return
	}
	if req.Calories == nil || req.Protein == nil || req.Carbs == nil || req.Fats == nil ||
		req.Sugar == nil || req.Salt == nil || req.Fiber == nil {
		writeError(w, model.NewValidationError("All goal fields are required."))
		return
	}

	goals := &model.Goals{
		UserID:   userID,
		Calories: *req.Calories,
		Protein:  *req.Protein,
		Carbs:    *req.Carbs,
		Fats:     *req.Fats,
		Sugar:    *req.Sugar,
		Salt:     *req.Salt,
		Fiber:    *req.Fiber,
	}
	if err := h.service.UpdateGoals(r.Context(), goals); err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "Successfully updated nutrition goals.")
}

// GetInfo はユーザー属性を返す。1行を配列に包んで返す。
// GET /user-info
func (h *ProfileHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	info, err := h.service.Info(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, []*model.UserInfo{info})
}

// createInfoRequest の各フィールドはポインタで受け、欠損を検知する。
// いずれかが欠けている場合はDBアクセス前に拒否する。
type createInfoRequest struct {
	Name   *string `json:"name"`
	Age    *int    `json:"age"`
	Weight *int    `json:"weight"`
	Height *int    `json:"height"`
	Gender *string `json:"gender"`
}

// CreateInfo はユーザー属性の初回登録を行う。全フィールド必須。
// POST /user-info
func (h *ProfileHandler) CreateInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	var req createInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("Invalid request body."))
		return
	}
	if req.Name == nil || req.Age == nil || req.Weight == nil || req.Height == nil || req.Gender == nil {
		writeError(w, model.NewValidationError("All user info fields are required."))
		return
	}

	info := &model.UserInfo{
		UserID: userID,
		Name:   *req.Name,
		Age:    *req.Age,
		Weight: *req.Weight,
		Height: *req.Height,
		Sex:    *req.Gender,
	}
	if err := h.service.CreateInfo(r.Context(), info); err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "Successfully added to user info.")
}

type updateInfoRequest struct {
	Age    *int `json:"age"`
	Weight *int `json:"weight"`
	Height *int `json:"height"`
}

// UpdateInfo はage/weight/heightを更新する。
// PATCH /user-info
func (h *ProfileHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	var req updateInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("Invalid request body."))
		return
	}
	if req.Age == nil || req.Weight == nil || req.Height == nil {
		writeError(w, model.NewValidationError("Age, weight and height are required."))
		return
	}

	if err := h.service.UpdateInfo(r.Context(), userID, *req.Age, *req.Weight, *req.Height); err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "Successfully updated user info.")
}
