package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/nutribud/internal/model"
)

// PostgresPerformanceRepo はPostgreSQLを使用したパフォーマンススコアリポジトリ。
type PostgresPerformanceRepo struct {
	db *sql.DB
}

// NewPostgresPerformanceRepo はPostgresPerformanceRepoを生成する。
func NewPostgresPerformanceRepo(db *sql.DB) *PostgresPerformanceRepo {
	return &PostgresPerformanceRepo{db: db}
}

// Upsert は(user, date)をキーにスコアを挿入または上書きする。
// UNIQUE (user_id, created_at)制約によるON CONFLICTで、同一日に2行は生まれない。
func (r *PostgresPerformanceRepo) Upsert(ctx context.Context, userID int64, day time.Time, score int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_perf (user_id, perf_score, created_at)
		 VALUES ($1, $2, $3::date)
		 ON CONFLICT (user_id, created_at)
		 DO UPDATE SET perf_score = EXCLUDED.perf_score`,
		userID, score, day.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert performance score: %w", err)
	}
	return nil
}

// FindByDay は指定日のスコアを取得する。見つからない場合はnilを返す。
func (r *PostgresPerformanceRepo) FindByDay(ctx context.Context, userID int64, day time.Time) (*model.PerformanceScore, error) {
	score := &model.PerformanceScore{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, perf_score, created_at FROM user_perf
		 WHERE user_id = $1 AND created_at = $2::date`,
		userID, day.Format("2006-01-02"),
	).Scan(&score.UserID, &score.Score, &score.Day)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find performance score: %w", err)
	}

	return score, nil
}

// ListAll は全スコアを日付昇順で返す。
// 元実装はORDER BYなしだったが、出力を決定的にするため明示的に昇順を付ける。
func (r *PostgresPerformanceRepo) ListAll(ctx context.Context, userID int64) ([]*model.PerformanceScore, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, perf_score, created_at FROM user_perf
		 WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance scores: %w", err)
	}
	defer rows.Close()

	var scores []*model.PerformanceScore
	for rows.Next() {
		score := &model.PerformanceScore{}
		if err := rows.Scan(&score.UserID, &score.Score, &score.Day); err != nil {
			return nil, fmt.Errorf("failed to scan performance score: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate performance scores: %w", err)
	}

	return scores, nil
}

// compile-time interface check
var _ PerformanceRepository = (*PostgresPerformanceRepo)(nil)
