package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hitoshi/nutribud/internal/middleware"
	"github.com/hitoshi/nutribud/internal/model"
)

// PerformanceServiceInterface はパフォーマンスハンドラーが必要とするサービスインターフェース。
type PerformanceServiceInterface interface {
	Record(ctx context.Context, userID int64, score int, date string) error
	History(ctx context.Context, userID int64, date string, allTime bool) ([]model.PerformancePoint, error)
}

// PerformanceHandler はデイリーパフォーマンススコアのHTTPハンドラー。
type PerformanceHandler struct {
	service PerformanceServiceInterface
}

// NewPerformanceHandler はPerformanceHandlerを生成する。
func NewPerformanceHandler(service PerformanceServiceInterface) *PerformanceHandler {
	return &PerformanceHandler{
		service: service,
	}
}

type recordScoreRequest struct {
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// Record はスコアを(user, date)キーでアップサートする。dateを省略すると当日扱い。
// POST /performance-history
func (h *PerformanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	var req recordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("Invalid request body."))
		return
	}

	if err := h.service.Record(r.Context(), userID, req.Score, req.Date); err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "Successfully updated performance info.")
}

// historyQueryParams はdate/allTimeクエリパラメータを検証して返す。
// 解釈不能なallTimeは検証エラー、dateとallTime=trueの併用は排他違反。
func historyQueryParams(r *http.Request) (string, bool, error) {
	date := r.URL.Query().Get("date")
	allTime := false
	if v := r.URL.Query().Get("allTime"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return "", false, model.NewValidationError("Invalid allTime parameter.")
		}
		allTime = parsed
	}
	if date != "" && allTime {
		return "", false, model.NewConflictingParametersError()
	}
	return date, allTime, nil
}

// HistoryQueryGuard はdateとallTimeの排他制約をセッション解決より前に
// 検証するミドルウェアを返す。矛盾したリクエストはログイン状態に関わらず拒否される。
func (h *PerformanceHandler) HistoryQueryGuard() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, _, err := historyQueryParams(r); err != nil {
				writeError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// History はパフォーマンス履歴を返す。dateとallTimeは排他。
// GET /performance-history?date= または ?allTime=true
func (h *PerformanceHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	date, allTime, err := historyQueryParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	points, err := h.service.History(r.Context(), userID, date, allTime)
	if err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, points)
}
