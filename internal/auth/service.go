package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/nutribud/internal/model"
	"github.com/hitoshi/nutribud/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionTTL        time.Duration // セッション有効期間（作成時刻基準、読み取り時に判定）
	PasswordMinLength int
}

// Service は登録・ログイン・セッション解決のサービス層。
type Service struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	config   ServiceConfig

	// テストで時計を差し替えるためのフック
	now func() time.Time

	// 未知ユーザー名でもハッシュ計算を行い、存在有無のタイミング差を埋めるための固定値
	dummySalt string
	dummyHash string
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(users repository.UserRepository, sessions repository.SessionRepository, config ServiceConfig) *Service {
	dummySalt, err := GenerateSalt()
	if err != nil {
		// crypto/randが機能しない環境ではそもそも運用できない
		panic(fmt.Sprintf("failed to generate dummy salt: %v", err))
	}
	dummyHash, _ := HashPassword("nutribud-dummy-password", dummySalt)

	return &Service{
		users:     users,
		sessions:  sessions,
		config:    config,
		now:       time.Now,
		dummySalt: dummySalt,
		dummyHash: dummyHash,
	}
}

// Register はユーザー登録を行う。
// 検証を通過したらユーザー行とデフォルト栄養目標を同一トランザクションで作成する。
// 登録は自動ログインしない。ログインは別呼び出しが必要。
func (s *Service) Register(ctx context.Context, username, password, confirmation string) error {
	if username == "" || password == "" {
		return model.NewValidationError("Username and password are required.")
	}
	if password != confirmation {
		return model.NewValidationError("Passwords do not match.")
	}
	if len(password) < s.config.PasswordMinLength {
		return model.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters long.", s.config.PasswordMinLength))
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return model.NewValidationError("Invalid credentials")
	}

	salt, err := GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := HashPassword(password, salt)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:       username,
		HashedPassword: hash,
		Salt:           salt,
	}
	userID, err := s.users.CreateWithGoals(ctx, user, model.DefaultGoals(0))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", slog.Int64("user_id", userID))
	return nil
}

// Login は資格情報を検証し、新しいセッションを作成して返す。
// ユーザー不存在でもダミーハッシュ比較を行い、パスワード不一致と同じ経路で失敗させる。
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		VerifyPassword(password, s.dummySalt, s.dummyHash)
		return nil, model.NewAuthenticationFailedError()
	}

	if !VerifyPassword(password, user.Salt, user.HashedPassword) {
		return nil, model.NewAuthenticationFailedError()
	}

	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: s.now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// ResolveSession はトークンからユーザーを解決する。
// 未知トークン・期限切れ・空トークンはいずれもエラーではなく(nil, nil)＝匿名状態として返す。
func (s *Service) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if s.now().Sub(session.CreatedAt) >= s.config.SessionTTL {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session user: %w", err)
	}
	return user, nil
}

// Logout は指定ユーザーの全セッションを失効させる。
// 呼び出し元のセッションだけでなく、同じユーザーの全ブラウザからログアウトする。
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if err := s.sessions.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions は期限切れセッションを削除する。起動時に1回呼ばれる。
func (s *Service) CleanupExpiredSessions(ctx context.Context) error {
	deleted, err := s.sessions.DeleteExpired(ctx, s.now().Add(-s.config.SessionTTL))
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("expired sessions removed", slog.Int64("count", deleted))
	}
	return nil
}
