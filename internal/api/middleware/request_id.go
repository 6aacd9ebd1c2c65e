package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applogger "study-hub/pkg/logger"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"

	// 外部传入的 ID 超过该长度时重新生成，防止日志注入
	requestIDMaxLen = 64
)

// RequestID 请求追踪 ID 中间件
// 沿用合法的 X-Request-ID，否则生成 UUID；同时写入 gin.Context、
// 请求 context（供 Service 层日志关联）与响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen || !printableASCII(rid) {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Request = c.Request.WithContext(applogger.ContextWithRequestID(c.Request.Context(), rid))
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}

func printableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
