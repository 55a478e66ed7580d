package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// Codeはエラー分類、Messageはそのままレスポンスの error フィールドになる。
type APIError struct {
	Code    string // エラーコード
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeAuthenticationFailed  = "AUTHENTICATION_FAILED"
	ErrCodeNotAuthenticated      = "NOT_AUTHENTICATED"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeUpstreamProviderError = "UPSTREAM_PROVIDER_ERROR"
	ErrCodeConflictingParameters = "CONFLICTING_PARAMETERS"
)

// NewAuthenticationFailedError はログイン失敗エラーを生成する。
// ユーザー不存在とパスワード不一致を区別しない。
func NewAuthenticationFailedError() *APIError {
	return &APIError{
		Code:    ErrCodeAuthenticationFailed,
		Message: "Login failed, check details and try again.",
	}
}

// NewNotAuthenticatedError はセッションが解決できない場合のエラーを生成する。
func NewNotAuthenticatedError() *APIError {
	return &APIError{
		Code:    ErrCodeNotAuthenticated,
		Message: "User not logged in",
	}
}

// NewValidationError はリクエスト不備エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: message,
	}
}

// NewNotFoundError は対象ドメイン行が存在しない場合のエラーを生成する。
// 互換性のためHTTPステータスは200のままerrorフィールドで返される。
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NewUpstreamProviderError は外部栄養プロバイダの呼び出し失敗エラーを生成する。
func NewUpstreamProviderError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeUpstreamProviderError,
		Message: message,
	}
}

// NewConflictingParametersError はdateとallTimeの同時指定エラーを生成する。
func NewConflictingParametersError() *APIError {
	return &APIError{
		Code:    ErrCodeConflictingParameters,
		Message: "Can't have both date and allTime parameters.",
	}
}
