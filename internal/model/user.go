// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// パスワードはArgon2idハッシュとソルトを別カラムで保持する。
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	Salt           string
	CreatedAt      time.Time
}

// Session はユーザーのログインセッションを表す。
// 有効期限は保持せず、作成時刻からのウィンドウを読み取り時に判定する。
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}

// Goals はユーザーの栄養目標を表す。1ユーザー1行。
type Goals struct {
	UserID   int64 `json:"-"`
	Calories int   `json:"calories"`
	Protein  int   `json:"protein"`
	Carbs    int   `json:"carbs"`
	Fats     int   `json:"fats"`
	Sugar    int   `json:"sugar"`
	Salt     int   `json:"salt"`
	Fiber    int   `json:"fiber"`
}

// DefaultGoals は登録時に作成するデフォルトの栄養目標を返す。
func DefaultGoals(userID int64) *Goals {
	return &Goals{
		UserID:   userID,
		Calories: 2000,
		Protein:  125,
		Carbs:    275,
		Fats:     55,
		Sugar:    30,
		Salt:     6,
		Fiber:    30,
	}
}

// UserInfo はユーザーの属性スナップショットを表す。1ユーザー1行。
type UserInfo struct {
	UserID int64  `json:"-"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Weight int    `json:"weight"`
	Height int    `json:"height"`
	Sex    string `json:"gender"`
}
