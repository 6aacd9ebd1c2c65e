package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-hub/pkg/response"
)

// MsgBodyTooLarge 请求体超限提示
const MsgBodyTooLarge = "Request body too large"

// BodyLimit 请求体大小限制中间件
// 声明的 Content-Length 超限时直接返回 413；长度未知（分块上传）时包装 MaxBytesReader，
// 读取超限由 Handler 在绑定时识别 *http.MaxBytesError 并返回 413。
// maxBytes <= 0 表示不限制
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		c.Next()
	}
}
