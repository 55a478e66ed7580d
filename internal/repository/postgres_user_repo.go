package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/nutribud/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// CreateWithGoals はユーザーとデフォルト栄養目標を同一トランザクションで作成する。
// 採番はINSERT ... RETURNING idで取得し、後続のMAX(id)参照のような競合を避ける。
func (r *PostgresUserRepo) CreateWithGoals(ctx context.Context, user *model.User, goals *model.Goals) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (username, hashed_password, salt)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		user.Username, user.HashedPassword, user.Salt,
	).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_goals (user_id, calories, protein, carbs, fats, sugar, salt, fiber)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, goals.Calories, goals.Protein, goals.Carbs, goals.Fats,
		goals.Sugar, goals.Salt, goals.Fiber,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert default goals: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return userID, nil
}

// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, hashed_password, salt, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.HashedPassword, &user.Salt, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	return user, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, hashed_password, salt, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Username, &user.HashedPassword, &user.Salt, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return user, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
