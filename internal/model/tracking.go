package model

import (
	"encoding/json"
	"time"
)

// TrackedItem は正規化済み栄養レコードを保持するカタログエントリ。
// 再トラッキング時はIDではなくペイロードの完全一致で検索される。
type TrackedItem struct {
	ID       int64
	ItemInfo json.RawMessage
}

// TrackingEntry は「ユーザーがアイテムXをYグラム食べた」1イベントを表す。
// user_historyとtracked_itemsのJOIN結果。
type TrackingEntry struct {
	ItemInfo     json.RawMessage `json:"item_info"`
	ServingSizeG int             `json:"serving_size_g"`
	TrackedAt    time.Time       `json:"time"`
}

// PerformanceScore は(user, date)ごとに最大1行のスコアを表す。
type PerformanceScore struct {
	UserID int64
	Score  int
	Day    time.Time
}

// PerformancePoint はパフォーマンス履歴APIのレスポンス1件。
type PerformancePoint struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}
