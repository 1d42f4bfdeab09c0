package jwt

import (
	"errors"
	"testing"
	"time"

	"class-inspect/backend/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-at-least-16-chars",
		AccessTokenTTL: ttl,
	})
}

func TestManager_GenerateAndParse(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("user-1", "admin", "")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.ID == "" {
		t.Error("jti 不应为空")
	}
}

func TestManager_ParseExpired(t *testing.T) {
	m := newTestManager(-1 * time.Minute)

	token, err := m.GenerateAccessToken("user-1", "teacher", "class-3-2")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestManager_ParseTampered(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-key-16-chars-min",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, err := other.GenerateAccessToken("user-1", "admin", "")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestManager_ParseGarbage(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	if _, err := m.ParseToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
