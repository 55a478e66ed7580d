package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/nutribud/internal/model"
)

// PostgresGoalsRepo はPostgreSQLを使用した栄養目標リポジトリ。
type PostgresGoalsRepo struct {
	db *sql.DB
}

// NewPostgresGoalsRepo はPostgresGoalsRepoを生成する。
func NewPostgresGoalsRepo(db *sql.DB) *PostgresGoalsRepo {
	return &PostgresGoalsRepo{db: db}
}

// FindByUserID は指定ユーザーの栄養目標を取得する。見つからない場合はnilを返す。
func (r *PostgresGoalsRepo) FindByUserID(ctx context.Context, userID int64) (*model.Goals, error) {
	goals := &model.Goals{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, calories, protein, carbs, fats, sugar, salt, fiber
		 FROM user_goals WHERE user_id = $1`,
		userID,
	).Scan(&goals.UserID, &goals.Calories, &goals.Protein, &goals.Carbs,
		&goals.Fats, &goals.Sugar, &goals.Salt, &goals.Fiber)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find goals: %w", err)
	}

	return goals, nil
}

// Update は栄養目標を上書き更新する。
func (r *PostgresGoalsRepo) Update(ctx context.Context, goals *model.Goals) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_goals
		 SET calories = $2, protein = $3, carbs = $4, fats = $5, sugar = $6, salt = $7, fiber = $8
		 WHERE user_id = $1`,
		goals.UserID, goals.Calories, goals.Protein, goals.Carbs,
		goals.Fats, goals.Sugar, goals.Salt, goals.Fiber,
	)
	if err != nil {
		return fmt.Errorf("failed to update goals: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("goals not found for user: %d", goals.UserID)
	}
	return nil
}

// PostgresUserInfoRepo はPostgreSQLを使用したユーザー属性リポジトリ。
type PostgresUserInfoRepo struct {
	db *sql.DB
}

// NewPostgresUserInfoRepo はPostgresUserInfoRepoを生成する。
func NewPostgresUserInfoRepo(db *sql.DB) *PostgresUserInfoRepo {
	return &PostgresUserInfoRepo{db: db}
}

// FindByUserID は指定ユーザーの属性を取得する。見つからない場合はnilを返す。
func (r *PostgresUserInfoRepo) FindByUserID(ctx context.Context, userID int64) (*model.UserInfo, error) {
	info := &model.UserInfo{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, name, age, weight, height, sex FROM user_info WHERE user_id = $1`,
		userID,
	).Scan(&info.UserID, &info.Name, &info.Age, &info.Weight, &info.Height, &info.Sex)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user info: %w", err)
	}

	return info, nil
}

// Create はユーザー属性を作成する。
func (r *PostgresUserInfoRepo) Create(ctx context.Context, info *model.UserInfo) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_info (user_id, name, age, weight, height, sex)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		info.UserID, info.Name, info.Age, info.Weight, info.Height, info.Sex,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user info: %w", err)
	}
	return nil
}

// Update はage/weight/heightを更新する。
func (r *PostgresUserInfoRepo) Update(ctx context.Context, userID int64, age, weight, height int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_info SET age = $2, weight = $3, height = $4 WHERE user_id = $1`,
		userID, age, weight, height,
	)
	if err != nil {
		return fmt.Errorf("failed to update user info: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user info not found for user: %d", userID)
	}
	return nil
}

// compile-time interface checks
var (
	_ GoalsRepository    = (*PostgresGoalsRepo)(nil)
	_ UserInfoRepository = (*PostgresUserInfoRepo)(nil)
)
