package repository

import (
	"testing"
)

// 各Postgresリポジトリが対応するインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

func TestPostgresSessionRepo_ImplementsInterface(t *testing.T) {
	var _ SessionRepository = (*PostgresSessionRepo)(nil)
}

func TestPostgresGoalsRepo_ImplementsInterface(t *testing.T) {
	var _ GoalsRepository = (*PostgresGoalsRepo)(nil)
}

func TestPostgresUserInfoRepo_ImplementsInterface(t *testing.T) {
	var _ UserInfoRepository = (*PostgresUserInfoRepo)(nil)
}

func TestPostgresTrackingRepo_ImplementsInterface(t *testing.T) {
	var _ TrackingRepository = (*PostgresTrackingRepo)(nil)
}

func TestPostgresPerformanceRepo_ImplementsInterface(t *testing.T) {
	var _ PerformanceRepository = (*PostgresPerformanceRepo)(nil)
}

// 各コンストラクタが非nilのリポジトリを返すことを検証
func TestConstructors_Initialize(t *testing.T) {
	if NewPostgresUserRepo(nil) == nil {
		t.Error("NewPostgresUserRepo returned nil")
	}
	if NewPostgresSessionRepo(nil) == nil {
		t.Error("NewPostgresSessionRepo returned nil")
	}
	if NewPostgresGoalsRepo(nil) == nil {
		t.Error("NewPostgresGoalsRepo returned nil")
	}
	if NewPostgresUserInfoRepo(nil) == nil {
		t.Error("NewPostgresUserInfoRepo returned nil")
	}
	if NewPostgresTrackingRepo(nil) == nil {
		t.Error("NewPostgresTrackingRepo returned nil")
	}
	if NewPostgresPerformanceRepo(nil) == nil {
		t.Error("NewPostgresPerformanceRepo returned nil")
	}
}
