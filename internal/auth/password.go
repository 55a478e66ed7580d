// Package auth はパスワード認証とセッション管理のドメインロジックを提供する。
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2idパラメータ（サーバーサイドハッシュ用）
const (
	argonTime    uint32 = 3         // iterations
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 2
	argonKeyLen  uint32 = 32

	saltLength = 16
)

// GenerateSalt は暗号学的に安全なランダムソルトをbase64で返す。
// ソルトはハッシュとは別カラムでユーザー行に保存される。
func GenerateSalt() (string, error) {
	b := make([]byte, saltLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPassword は指定ソルトを使用したArgon2idハッシュをbase64で返す。
func HashPassword(password, salt string) (string, error) {
	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("failed to decode salt: %w", err)
	}
	hash := argon2.IDKey([]byte(password), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.RawStdEncoding.EncodeToString(hash), nil
}

// VerifyPassword はパスワードを保存済みソルトで再ハッシュし、
// 保存済みハッシュと定数時間で比較する。
func VerifyPassword(password, salt, expectedHash string) bool {
	got, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(expectedHash)) == 1
}
