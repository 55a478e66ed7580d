// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hitoshi/nutribud/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// CreateWithGoals はユーザーとデフォルト栄養目標を同一トランザクションで作成し、
	// 採番されたユーザーIDを返す。
	CreateWithGoals(ctx context.Context, user *model.User, goals *model.Goals) (int64, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByToken は指定トークンのセッションを取得する。見つからない場合はnilを返す。
	// 有効期限の判定は呼び出し側（authサービス）が行う。
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID int64) error
	// DeleteExpired は指定時刻より前に作成されたセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// GoalsRepository は栄養目標の永続化インターフェース。
type GoalsRepository interface {
	// FindByUserID は指定ユーザーの栄養目標を取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID int64) (*model.Goals, error)
	// Update は栄養目標を上書き更新する。履歴は保持しない。
	Update(ctx context.Context, goals *model.Goals) error
}

// UserInfoRepository はユーザー属性の永続化インターフェース。
type UserInfoRepository interface {
	// FindByUserID は指定ユーザーの属性を取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID int64) (*model.UserInfo, error)
	// Create はユーザー属性を作成する。
	Create(ctx context.Context, info *model.UserInfo) error
	// Update はage/weight/heightを更新する。
	Update(ctx context.Context, userID int64, age, weight, height int) error
}

// TrackingRepository はトラッキングデータの永続化インターフェース。
type TrackingRepository interface {
	// Track は正規化済みペイロードの完全一致でカタログ行を再利用（なければ作成）し、
	// 履歴行を追加する。両ステートメントは同一トランザクションで実行する。
	Track(ctx context.Context, userID int64, itemInfo json.RawMessage, servingSizeG int, at time.Time) error

	// ListByDate は指定カレンダー日付の履歴をカタログとJOINし、時刻昇順で返す。
	ListByDate(ctx context.Context, userID int64, day time.Time) ([]*model.TrackingEntry, error)
}

// PerformanceRepository はパフォーマンススコアの永続化インターフェース。
type PerformanceRepository interface {
	// Upsert は(user, date)をキーにスコアを挿入または上書きする。
	Upsert(ctx context.Context, userID int64, day time.Time, score int) error
	// FindByDay は指定日のスコアを取得する。見つからない場合はnilを返す。
	FindByDay(ctx context.Context, userID int64, day time.Time) (*model.PerformanceScore, error)
	// ListAll は全スコアを日付昇順で返す。
	ListAll(ctx context.Context, userID int64) ([]*model.PerformanceScore, error)
}
