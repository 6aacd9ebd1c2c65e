package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-hub/internal/api/middleware"
	"study-hub/internal/api/validation"
	"study-hub/internal/service"
	"study-hub/pkg/response"
)

const msgUnauthenticated = "No token provided"

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxUserID)
	if s == "" {
		response.Unauthorized(c, msgUnauthenticated)
		return "", false
	}
	return s, true
}

// MustGetCaller 从上下文组装当前用户身份
func MustGetCaller(c *gin.Context) (*service.Caller, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return nil, false
	}
	return &service.Caller{
		UserID: userID,
		Email:  c.GetString(middleware.CtxEmail),
		Role:   c.GetString(middleware.CtxRole),
		Name:   c.GetString(middleware.CtxName),
	}, true
}

// bindJSON 绑定并校验 JSON 请求体，失败时写入 400/413 响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

// bindQuery 绑定并校验查询参数
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		response.Error(c, http.StatusRequestEntityTooLarge, middleware.MsgBodyTooLarge)
		return
	}
	response.BadRequest(c, validation.Message(err))
}
