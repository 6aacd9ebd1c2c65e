package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"study-hub/internal/service"
	"study-hub/pkg/response"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAssignments 导出作业 Excel
// GET /api/export/assignments
func (h *ExportHandler) ExportAssignments(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportAssignments(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, buf, filename, mimeXLSX)
}

// ExportEvidence 导出评估证据 Excel（教练/讲师）
// GET /api/export/evidence
func (h *ExportHandler) ExportEvidence(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportEvidence(c.Request.Context(), caller)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, buf, filename, mimeXLSX)
}

// ExportPlanner 导出每周学习计划 iCalendar
// GET /api/export/planner.ics
func (h *ExportHandler) ExportPlanner(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportPlanner(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, buf, filename, mimeICS)
}

// sendFile 设置下载响应头并写出文件
func sendFile(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	encodedFilename := url.PathEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}
