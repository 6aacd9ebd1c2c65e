package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 数据库连通性探测
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

const healthPingTimeout = 2 * time.Second

// HealthHandler 健康检查
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Check 服务存活检查
// GET /api/health
// 数据库不可用时仍返回 200，由 database 字段体现
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{Status: "Backend is running", Database: "ok"}

	if h.pinger == nil {
		resp.Database = "unavailable"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.pinger.PingContext(ctx); err != nil {
			resp.Database = "unavailable"
		}
	}

	c.JSON(http.StatusOK, resp)
}
