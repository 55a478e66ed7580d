// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/nutribud/internal/model"
)

// writeResponse は成功レスポンスを統一フォーマット {"response": ...} で書き込む。
func writeResponse(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]any{
		"response": v,
	})
}

// writeError はエラーを統一フォーマット {"error": ...} で書き込む。
// ステータスはエラーコードから決まる: 検証・認証系は400、プロバイダ障害は502、
// ドメインの「該当なし」は互換性のため200、それ以外は500。
func writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		slog.Error("unexpected handler error", slog.String("error", err.Error()))
		writeErrorBody(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeErrorBody(w, statusForCode(apiErr.Code), apiErr.Message)
}

func writeErrorBody(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeAuthenticationFailed,
		model.ErrCodeNotAuthenticated,
		model.ErrCodeValidationFailed,
		model.ErrCodeConflictingParameters:
		return http.StatusBadRequest
	case model.ErrCodeNotFound:
		return http.StatusOK
	case model.ErrCodeUpstreamProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
