package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hitoshi/nutribud/internal/model"
)

// PostgresTrackingRepo はPostgreSQLを使用したトラッキングリポジトリ。
type PostgresTrackingRepo struct {
	db *sql.DB
}

// NewPostgresTrackingRepo はPostgresTrackingRepoを生成する。
func NewPostgresTrackingRepo(db *sql.DB) *PostgresTrackingRepo {
	return &PostgresTrackingRepo{db: db}
}

// Track はカタログ行の再利用（なければ作成）と履歴追加を同一トランザクションで行う。
// カタログの重複排除はJSONBペイロードの完全一致で判定する。プロバイダ由来の
// 浮動小数点ノイズで値が僅かに異なるペイロードは別カタログ行になる（既知の仕様）。
func (r *PostgresTrackingRepo) Track(ctx context.Context, userID int64, itemInfo json.RawMessage, servingSizeG int, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var itemID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM tracked_items WHERE item_info = $1::jsonb`,
		string(itemInfo),
	).Scan(&itemID)

	if err == sql.ErrNoRows {
		err = tx.QueryRowContext(ctx,
			`INSERT INTO tracked_items (item_info) VALUES ($1::jsonb) RETURNING id`,
			string(itemInfo),
		).Scan(&itemID)
		if err != nil {
			return fmt.Errorf("failed to insert tracked item: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to find tracked item: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_history (item_id, user_id, serving_size_g, created_at)
		 VALUES ($1, $2, $3, $4)`,
		itemID, userID, servingSizeG, at,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListByDate は指定カレンダー日付の履歴をカタログとJOINし、時刻昇順で返す。
func (r *PostgresTrackingRepo) ListByDate(ctx context.Context, userID int64, day time.Time) ([]*model.TrackingEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ti.item_info, uh.serving_size_g, uh.created_at
		 FROM user_history uh
		 JOIN tracked_items ti ON uh.item_id = ti.id
		 WHERE uh.user_id = $1 AND uh.created_at::date = $2::date
		 ORDER BY uh.created_at ASC`,
		userID, day.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked items: %w", err)
	}
	defer rows.Close()

	var entries []*model.TrackingEntry
	for rows.Next() {
		entry := &model.TrackingEntry{}
		var itemInfo []byte
		if err := rows.Scan(&itemInfo, &entry.ServingSizeG, &entry.TrackedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tracking entry: %w", err)
		}
		entry.ItemInfo = json.RawMessage(itemInfo)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracking entries: %w", err)
	}

	return entries, nil
}

// compile-time interface check
var _ TrackingRepository = (*PostgresTrackingRepo)(nil)
