package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"study-hub/config"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(&config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient 失败: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(&config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	if err == nil {
		t.Error("无法连接时应返回错误")
	}
}

func TestBlacklistToken(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	if err := c.BlacklistToken(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("BlacklistToken 失败: %v", err)
	}

	ok, err := c.IsBlacklisted(ctx, "jti-1")
	if err != nil || !ok {
		t.Fatalf("期望 jti-1 在黑名单中, ok=%v err=%v", ok, err)
	}

	ok, _ = c.IsBlacklisted(ctx, "jti-2")
	if ok {
		t.Error("jti-2 不应在黑名单中")
	}

	mr.FastForward(2 * time.Minute)
	ok, _ = c.IsBlacklisted(ctx, "jti-1")
	if ok {
		t.Error("黑名单条目应随 Token 过期")
	}
}

func TestBlacklistToken_ExpiredTTL(t *testing.T) {
	c, mr := newTestClient(t)

	if err := c.BlacklistToken(context.Background(), "jti-old", 0); err != nil {
		t.Fatalf("BlacklistToken 失败: %v", err)
	}
	if mr.Exists(blacklistPrefix + "jti-old") {
		t.Error("已过期 Token 不应写入黑名单")
	}
}

func TestCheckRateLimit(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := c.CheckRateLimit(ctx, "rl:test", 3, time.Minute)
		if err != nil {
			t.Fatalf("CheckRateLimit 失败: %v", err)
		}
		if !ok {
			t.Fatalf("第 %d 次请求应被放行", i+1)
		}
	}

	ok, err := c.CheckRateLimit(ctx, "rl:test", 3, time.Minute)
	if err != nil {
		t.Fatalf("CheckRateLimit 失败: %v", err)
	}
	if ok {
		t.Error("超出限额的请求应被拒绝")
	}

	ok, _ = c.CheckRateLimit(ctx, "rl:other", 3, time.Minute)
	if !ok {
		t.Error("不同 key 的计数应相互独立")
	}
}

func TestGetSet(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrNil) {
		t.Errorf("期望 ErrNil，实际: %v", err)
	}

	if err := c.Set(ctx, "k", []byte(`{"a":1}`), time.Hour); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}
	b, err := c.Get(ctx, "k")
	if err != nil || string(b) != `{"a":1}` {
		t.Errorf("Get 结果不符: %s, %v", b, err)
	}
}
