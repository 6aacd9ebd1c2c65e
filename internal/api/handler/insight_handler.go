package handler

import (
	"github.com/gin-gonic/gin"

	"study-hub/internal/service"
	"study-hub/pkg/response"
)

// InsightHandler 学习洞察 HTTP 处理器
type InsightHandler struct {
	insightSvc service.InsightService
}

// NewInsightHandler 创建 InsightHandler
func NewInsightHandler(insightSvc service.InsightService) *InsightHandler {
	return &InsightHandler{insightSvc: insightSvc}
}

// Generate 基于当前用户的作业与学习计划生成洞察
// GET /api/insights
func (h *InsightHandler) Generate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.insightSvc.Generate(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "Failed to generate insights")
		return
	}
	response.OK(c, result)
}
