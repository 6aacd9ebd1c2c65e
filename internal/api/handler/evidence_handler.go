package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"study-hub/internal/dto"
	"study-hub/internal/service"
	"study-hub/pkg/response"
)

// EvidenceHandler 评估证据 HTTP 处理器
type EvidenceHandler struct {
	evidenceSvc service.EvidenceService
}

// NewEvidenceHandler 创建 EvidenceHandler
func NewEvidenceHandler(evidenceSvc service.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{evidenceSvc: evidenceSvc}
}

// List 评估证据列表（学生仅见本人）
// GET /api/evidence?search=&category=
func (h *EvidenceHandler) List(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.EvidenceListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, err := h.evidenceSvc.List(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Stats 评估证据统计
// GET /api/evidence/stats
func (h *EvidenceHandler) Stats(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	stats, err := h.evidenceSvc.Stats(c.Request.Context(), caller)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, stats)
}

// Categories 评估维度列表
// GET /api/evidence/categories
func (h *EvidenceHandler) Categories(c *gin.Context) {
	response.OK(c, h.evidenceSvc.Categories())
}

// Create 录入评估证据（教练/讲师）
// POST /api/evidence
func (h *EvidenceHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.CreateEvidenceRequest
	if !bindJSON(c, &req) {
		return
	}

	ev, err := h.evidenceSvc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, ev)
}

// Delete 删除评估证据（仅录入人）
// DELETE /api/evidence/:id
func (h *EvidenceHandler) Delete(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.evidenceSvc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.Message(c, "Evidence deleted")
}

func (h *EvidenceHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEvidenceNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoPermission),
		errors.Is(err, service.ErrEvidenceNotAuthor):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrScoreOutOfRange),
		errors.Is(err, service.ErrInvalidCategory):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}
