package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/nutribud/internal/middleware"
	"github.com/hitoshi/nutribud/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, username, password, confirmation string) error
	Login(ctx context.Context, username, password string) (*model.Session, error)
	ResolveSession(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, userID int64) error
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain string
	CookieSecure bool
	SessionTTL   time.Duration // セッションCookieの有効期間
}

// AuthHandler は登録・ログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login は資格情報を検証し、セッションCookieを設定する。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("Invalid request body."))
		return
	}

	session, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   int(h.config.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeResponse(w, http.StatusOK, "Login Success!")
}

// Probe はセッションCookieが有効なユーザーに解決できるかをtrue/falseで返す。
// 未ログインはエラーではなく false の成功レスポンス。
// GET /login
func (h *AuthHandler) Probe(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeResponse(w, http.StatusOK, false)
		return
	}

	user, err := h.service.ResolveSession(r.Context(), cookie.Value)
	if err != nil {
		slog.Error("failed to resolve session", slog.String("error", err.Error()))
		writeResponse(w, http.StatusOK, false)
		return
	}

	writeResponse(w, http.StatusOK, user != nil)
}

// Logout はユーザーの全セッションを失効させ、Cookieをクリアする。
// DELETE /login （セッションミドルウェアの内側）
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, model.NewNotAuthenticatedError())
		return
	}

	if err := h.service.Logout(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeResponse(w, http.StatusOK, "Successfully logged out")
}

type registerRequest struct {
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// Register はユーザー登録を行う。デフォルト栄養目標も同時に作成される。
// 登録後の自動ログインはしない。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("Invalid request body."))
		return
	}

	if err := h.service.Register(r.Context(), req.Username, req.Password, req.PasswordConfirmation); err != nil {
		writeError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "Successful registration")
}
