package errors

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm 翻译后", gorm.ErrDuplicatedKey, true},
		{"包装后的 gorm 错误", fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey), true},
		{"postgres 原始错误", errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`), true},
		{"sqlite 原始错误", errors.New("UNIQUE constraint failed: users.email"), true},
		{"其他错误", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicateKey(tt.err); got != tt.want {
				t.Errorf("IsDuplicateKey(%v)=%v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("wrap: %w", gorm.ErrRecordNotFound)) {
		t.Error("包装后的 ErrRecordNotFound 应被识别")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("其他错误不应被识别为 not found")
	}
}
