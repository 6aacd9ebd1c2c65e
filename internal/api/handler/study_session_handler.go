package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"study-hub/internal/dto"
	"study-hub/internal/service"
	"study-hub/pkg/response"
)

// StudySessionHandler 学习计划 HTTP 处理器
type StudySessionHandler struct {
	sessionSvc service.StudySessionService
}

// NewStudySessionHandler 创建 StudySessionHandler
func NewStudySessionHandler(sessionSvc service.StudySessionService) *StudySessionHandler {
	return &StudySessionHandler{sessionSvc: sessionSvc}
}

// List 当前用户的学习计划，按星期与开始时间排序
// GET /api/sessions?day=Monday
func (h *StudySessionHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.StudySessionListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, err := h.sessionSvc.List(c.Request.Context(), userID, req.Day)
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, list)
}

// Week 按天分组的一周计划
// GET /api/sessions/week
func (h *StudySessionHandler) Week(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	plan, err := h.sessionSvc.Week(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, plan)
}

// Create 新增学习计划
// POST /api/sessions
func (h *StudySessionHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateStudySessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, session)
}

// Update 修改学习计划（部分字段）
// PUT /api/sessions/:id
func (h *StudySessionHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateStudySessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, session)
}

// Delete 删除学习计划
// DELETE /api/sessions/:id
func (h *StudySessionHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.Message(c, "Study session deleted")
}

func (h *StudySessionHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudySessionNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}
