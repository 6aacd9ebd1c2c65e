package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"study-hub/config"
	"study-hub/internal/dto"
	"study-hub/internal/model"
	"study-hub/pkg/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-key-for-unit-testing",
			TokenTTL:   24 * time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
		Pomodoro: config.PomodoroConfig{FocusMinutes: 25, BreakMinutes: 5},
	}
}

func setupTestAuthService() (*authService, *testRepos, *jwt.Manager, *mockRevoker) {
	cfg := testConfig()
	repos := newTestRepos()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	revoker := newMockRevoker()
	svc := NewAuthService(cfg, repos.repo, jwtMgr, revoker, zap.NewNop()).(*authService)
	return svc, repos, jwtMgr, revoker
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	svc, _, jwtMgr, _ := setupTestAuthService()
	ctx := context.Background()

	signup, err := svc.Signup(ctx, &dto.SignupRequest{
		Email: "  Alice@Example.com ", Password: "secret123", Name: "Alice", Role: model.RoleStudent,
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if signup.User.Email != "alice@example.com" {
		t.Errorf("邮箱应规范化为小写，实际=%s", signup.User.Email)
	}

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "ALICE@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	claims, err := jwtMgr.ParseToken(login.Token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != signup.User.ID {
		t.Errorf("Token 中的 id=%s，期望=%s", claims.UserID, signup.User.ID)
	}
	if claims.Role != model.RoleStudent || claims.Name != "Alice" {
		t.Errorf("Token 声明不符: %+v", claims)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.SignupRequest
		want error
	}{
		{"缺少邮箱", dto.SignupRequest{Password: "p", Name: "n", Role: model.RoleStudent}, ErrMissingFields},
		{"缺少密码", dto.SignupRequest{Email: "a@b.com", Name: "n", Role: model.RoleStudent}, ErrMissingFields},
		{"姓名为空白", dto.SignupRequest{Email: "a@b.com", Password: "p", Name: "  ", Role: model.RoleStudent}, ErrMissingFields},
		{"缺少角色", dto.SignupRequest{Email: "a@b.com", Password: "p", Name: "n"}, ErrMissingFields},
		{"非法角色", dto.SignupRequest{Email: "a@b.com", Password: "p", Name: "n", Role: "admin"}, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repos, _, _ := setupTestAuthService()
			_, err := svc.Signup(context.Background(), &tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际 %v", tt.want, err)
			}
			if len(repos.users.users) != 0 {
				t.Error("校验失败时不应创建用户")
			}
		})
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	ctx := context.Background()
	req := &dto.SignupRequest{Email: "dup@example.com", Password: "pw", Name: "Dup", Role: model.RoleCoach}

	if _, err := svc.Signup(ctx, req); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	req.Email = "DUP@example.com"
	if _, err := svc.Signup(ctx, req); !errors.Is(err, ErrUserExists) {
		t.Errorf("期望 ErrUserExists，实际 %v", err)
	}
	if len(repos.users.users) != 1 {
		t.Errorf("重复注册不应新增记录，实际 %d 条", len(repos.users.users))
	}
}

func TestAuthService_Signup_UniqueRace(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	// 查询时不存在、写入时命中唯一索引
	repos.users.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Email: "race@example.com", Password: "pw", Name: "Race", Role: model.RoleStudent,
	})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("期望 ErrUserExists，实际 %v", err)
	}
}

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Email: "h@example.com", Password: "plain-text", Name: "H", Role: model.RoleInstructor,
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	stored := repos.users.users[resp.User.ID]
	if stored.PasswordHash == "plain-text" {
		t.Fatal("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("plain-text")); err != nil {
		t.Errorf("存储的哈希无法验证原密码: %v", err)
	}
}

func TestAuthService_Login_Errors(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()
	ctx := context.Background()
	_, _ = svc.Signup(ctx, &dto.SignupRequest{
		Email: "bob@example.com", Password: "correct", Name: "Bob", Role: model.RoleStudent,
	})

	_, errWrongPwd := svc.Login(ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "wrong"})
	_, errUnknown := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "correct"})

	if !errors.Is(errWrongPwd, ErrInvalidCredentials) || !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials，实际 wrong=%v unknown=%v", errWrongPwd, errUnknown)
	}
	if errWrongPwd.Error() != errUnknown.Error() {
		t.Error("密码错误与用户不存在的错误文案应一致")
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "bob@example.com"}); !errors.Is(err, ErrLoginFieldsRequired) {
		t.Errorf("缺少密码期望 ErrLoginFieldsRequired，实际 %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Password: "x"}); !errors.Is(err, ErrLoginFieldsRequired) {
		t.Errorf("缺少邮箱期望 ErrLoginFieldsRequired，实际 %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _, revoker := setupTestAuthService()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedNow(now)

	if err := svc.Logout(context.Background(), "jti-1", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if ttl := revoker.revoked["jti-1"]; ttl != 2*time.Hour {
		t.Errorf("黑名单 TTL 应为 Token 剩余有效期，实际 %v", ttl)
	}
}

func TestAuthService_Logout_NoRevoker(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(cfg, newTestRepos().repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
	if err := svc.Logout(context.Background(), "jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("无 Redis 时登出应直接成功，实际 %v", err)
	}
}
