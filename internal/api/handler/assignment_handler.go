package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"study-hub/internal/dto"
	"study-hub/internal/service"
	"study-hub/pkg/response"
)

// AssignmentHandler 作业 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// List 作业列表
// GET /api/assignments?filter=all|active|completed
func (h *AssignmentHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.AssignmentListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, err := h.assignmentSvc.List(c.Request.Context(), userID, req.Filter)
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, list)
}

// Stats 作业统计
// GET /api/assignments/stats
func (h *AssignmentHandler) Stats(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stats, err := h.assignmentSvc.Stats(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, stats)
}

// Create 新增作业
// POST /api/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.assignmentSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, a)
}

// Update 修改作业（部分字段）
// PUT /api/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.assignmentSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, a)
}

// Toggle 切换完成状态
// PATCH /api/assignments/:id/toggle
func (h *AssignmentHandler) Toggle(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	a, err := h.assignmentSvc.Toggle(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, a)
}

// Delete 删除作业
// DELETE /api/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.Message(c, "Assignment deleted")
}

func (h *AssignmentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidDueDate):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}
