package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"study-hub/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  24 * time.Hour,
	})
}

var testIdentity = Identity{
	UserID: "user-1",
	Email:  "a@x.com",
	Role:   "student",
	Name:   "A",
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	token, expiresAt, err := m.GenerateToken(testIdentity)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("期望 Email=a@x.com，实际=%s", claims.Email)
	}
	if claims.Role != "student" {
		t.Errorf("期望 Role=student，实际=%s", claims.Role)
	}
	if claims.Name != "A" {
		t.Errorf("期望 Name=A，实际=%s", claims.Name)
	}
	if claims.Issuer != "study-hub" {
		t.Errorf("期望 Issuer=study-hub，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	// 过期时间约为 24h
	ttl := time.Until(expiresAt)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("TTL 期望约24h，实际=%v", ttl)
	}
	if !claims.ExpiresAt.Time.Equal(expiresAt.Truncate(time.Second)) {
		t.Errorf("claims.exp 与返回的过期时间不一致: %v vs %v", claims.ExpiresAt.Time, expiresAt)
	}
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	m := newTestManager()
	t1, _, _ := m.GenerateToken(testIdentity)
	t2, _, _ := m.GenerateToken(testIdentity)

	c1, _ := m.ParseToken(t1)
	c2, _ := m.ParseToken(t2)
	if c1.ID == c2.ID {
		t.Error("两次签发的 JTI 不应相同")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	for _, raw := range []string{"", "invalid.token.string", "abc"} {
		if _, err := m.ParseToken(raw); err != ErrTokenInvalid {
			t.Errorf("token=%q 期望 ErrTokenInvalid，实际: %v", raw, err)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret: "different-secret-key",
		TokenTTL:  24 * time.Hour,
	})

	token, _, _ := m1.GenerateToken(testIdentity)
	if _, err := m2.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("不同密钥签名的 token 期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_ExpiredAfter24h(t *testing.T) {
	issuerMgr := newTestManager()
	issuerMgr.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }

	token, _, err := issuerMgr.GenerateToken(testIdentity)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	_, err = newTestManager().ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("超过 24h 的 token 期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_AlgNone(t *testing.T) {
	m := newTestManager()

	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    "study-hub",
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims)
	raw, err := token.SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("构造 none token 失败: %v", err)
	}

	if _, err := m.ParseToken(raw); err != ErrTokenInvalid {
		t.Errorf("alg=none 的 token 期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	m := newTestManager()

	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, _ := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(m.secret)

	if _, err := m.ParseToken(raw); err != ErrTokenInvalid {
		t.Errorf("签发方不符的 token 期望 ErrTokenInvalid，实际: %v", err)
	}
}
