package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 5000},
		Database: DatabaseConfig{Driver: DriverPostgres},
		Auth: AuthConfig{
			JWTSecret:  "test-secret-key-for-unit-testing",
			TokenTTL:   24 * time.Hour,
			BcryptCost: 10,
		},
		Pomodoro: PomodoroConfig{FocusMinutes: 25, BreakMinutes: 5},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法配置", func(c *Config) {}, false},
		{"空密钥", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"TTL 为 0", func(c *Config) { c.Auth.TokenTTL = 0 }, true},
		{"bcrypt cost 过小", func(c *Config) { c.Auth.BcryptCost = 2 }, true},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"未知驱动", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"sqlite 驱动", func(c *Config) { c.Database.Driver = DriverSQLite }, false},
		{"番茄钟时长为 0", func(c *Config) { c.Pomodoro.BreakMinutes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestDSN_PrefersURL(t *testing.T) {
	c := DatabaseConfig{
		URL:  "postgres://u:p@db.example.com/study?sslmode=require",
		Host: "localhost",
	}
	if got := c.DSN(); got != c.URL {
		t.Errorf("期望使用 URL，实际=%s", got)
	}

	c.URL = ""
	c.Port = 5432
	c.User = "postgres"
	c.Name = "study_hub"
	c.SSLMode = "disable"
	c.Timezone = "UTC"
	want := "host=localhost port=5432 user=postgres password= dbname=study_hub sslmode=disable TimeZone=UTC"
	if got := c.DSN(); got != want {
		t.Errorf("DSN 不符\n期望: %s\n实际: %s", want, got)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret-key-1234567890")
	t.Setenv("PORT", "8081")
	t.Setenv("STUDYHUB_AUTH_TOKEN_TTL", "2h")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Auth.JWTSecret != "env-secret-key-1234567890" {
		t.Errorf("期望读取 JWT_SECRET，实际=%q", cfg.Auth.JWTSecret)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("期望 Port=8081，实际=%d", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("期望 TokenTTL=2h，实际=%v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("期望默认 BcryptCost=10，实际=%d", cfg.Auth.BcryptCost)
	}
	if cfg.Pomodoro.FocusMinutes != 25 || cfg.Pomodoro.BreakMinutes != 5 {
		t.Errorf("番茄钟默认值不符: %+v", cfg.Pomodoro)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STUDYHUB_AUTH_JWT_SECRET", "")

	if _, err := Load(""); err == nil {
		t.Error("缺少 jwt_secret 时应返回错误")
	}
}
