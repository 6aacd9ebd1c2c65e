package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"study-hub/internal/dto"
	"study-hub/internal/model"
	"study-hub/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("Failed to generate export file")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportAssignments 导出当前用户的作业为 Excel
	ExportAssignments(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportEvidence 导出评估证据为 Excel（仅教练/讲师）
	ExportEvidence(ctx context.Context, caller *Caller) (*bytes.Buffer, string, error)
	// ExportPlanner 导出每周学习计划为 iCalendar，每条计划为一个每周重复事件
	ExportPlanner(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportAssignments — 作业导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Assignments"
//   - 行顺序与列表接口一致（未完成在前，截止日期升序）

func (s *exportService) ExportAssignments(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	list, err := s.repo.Assignment.ListByUser(ctx, userID, nil)
	if err != nil {
		s.logger.Error("查询作业失败", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}
	sortAssignments(list)

	now := s.now()
	today := todayUTC(now)

	header := []string{"Title", "Subject", "Due Date", "Priority", "Status", "Days Until Due", "Notes"}
	widths := []float64{32, 18, 12, 10, 12, 14, 40}

	rows := make([][]interface{}, 0, len(list))
	for i := range list {
		a := &list[i]
		status := "Active"
		switch {
		case a.Completed:
			status = "Completed"
		case a.IsOverdue(today):
			status = "Overdue"
		}
		rows = append(rows, []interface{}{
			a.Title,
			a.Subject,
			a.DueDate.Format(dto.DateLayout),
			a.Priority,
			status,
			daysUntilDue(a.DueDate, today),
			a.Notes,
		})
	}

	buf, err := s.writeWorkbook("Assignments", header, widths, rows)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("assignments_%s.xlsx", now.Format("20060102")), nil
}

// ═══════════════════════════════════════════════════════════
// ExportEvidence — 评估证据导出为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportEvidence(ctx context.Context, caller *Caller) (*bytes.Buffer, string, error) {
	if !model.IsStaff(caller.Role) {
		return nil, "", ErrNoPermission
	}

	list, err := s.repo.Evidence.List(ctx, &repository.EvidenceFilters{})
	if err != nil {
		s.logger.Error("查询评估证据失败", zap.Error(err))
		return nil, "", err
	}

	header := []string{
		"Date", "Student", "Email", "Subject", "Category",
		"Score", "Max Score", "Percent", "Description", "Notes", "Evaluated By",
	}
	widths := []float64{12, 20, 28, 16, 22, 8, 10, 10, 48, 32, 20}

	rows := make([][]interface{}, 0, len(list))
	for i := range list {
		e := &list[i]
		rows = append(rows, []interface{}{
			e.DateSubmitted.Format(dto.DateLayout),
			e.StudentName,
			e.StudentEmail,
			e.Subject,
			e.RubricCategory,
			e.Score,
			e.MaxScore,
			fmt.Sprintf("%.1f%%", e.Percent()),
			e.Description,
			e.Notes,
			e.EvaluatedBy,
		})
	}

	buf, err := s.writeWorkbook("Evidence", header, widths, rows)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("rubric_evidence_%s.xlsx", s.now().Format("20060102")), nil
}

// writeWorkbook 生成单 Sheet 工作簿：首行为加粗表头，其余为数据行
func (s *exportService) writeWorkbook(sheetName string, header []string, widths []float64, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	_ = f.DeleteSheet("Sheet1")

	for i, w := range widths {
		col := colName(i)
		_ = f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range header {
		_ = f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	_ = f.SetCellStyle(sheetName, cell(colName(0), 1), cell(colName(len(header)-1), 1), headerStyle)

	for r, values := range rows {
		for c, v := range values {
			_ = f.SetCellValue(sheetName, cell(colName(c), r+2), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
