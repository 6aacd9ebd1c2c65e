package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"study-hub/internal/dto"
	"study-hub/internal/service"
	"study-hub/pkg/response"
)

// PomodoroHandler 番茄钟 HTTP 处理器
type PomodoroHandler struct {
	pomodoroSvc service.PomodoroService
}

// NewPomodoroHandler 创建 PomodoroHandler
func NewPomodoroHandler(pomodoroSvc service.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{pomodoroSvc: pomodoroSvc}
}

type pomodoroOp func(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error)

// run 执行无请求体的番茄钟操作
func (h *PomodoroHandler) run(c *gin.Context, op pomodoroOp) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	state, err := op(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, state)
}

// Get 当前状态
// GET /api/pomodoro
func (h *PomodoroHandler) Get(c *gin.Context) { h.run(c, h.pomodoroSvc.Get) }

// Start 开始计时
// POST /api/pomodoro/start
func (h *PomodoroHandler) Start(c *gin.Context) { h.run(c, h.pomodoroSvc.Start) }

// Pause 暂停
// POST /api/pomodoro/pause
func (h *PomodoroHandler) Pause(c *gin.Context) { h.run(c, h.pomodoroSvc.Pause) }

// Reset 重置当前模式
// POST /api/pomodoro/reset
func (h *PomodoroHandler) Reset(c *gin.Context) { h.run(c, h.pomodoroSvc.Reset) }

// SwitchMode 切换专注/休息
// POST /api/pomodoro/mode
func (h *PomodoroHandler) SwitchMode(c *gin.Context) {
	var req dto.SwitchPomodoroModeRequest
	if !bindJSON(c, &req) {
		return
	}
	h.run(c, func(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error) {
		return h.pomodoroSvc.SwitchMode(ctx, userID, req.Mode)
	})
}

// UpdateSettings 修改专注/休息时长
// PUT /api/pomodoro/settings
func (h *PomodoroHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdatePomodoroSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	h.run(c, func(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error) {
		return h.pomodoroSvc.UpdateSettings(ctx, userID, &req)
	})
}
