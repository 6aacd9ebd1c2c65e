package dto

// ── 作业模块 DTO ──

// DateLayout 日期字段统一格式
const DateLayout = "2006-01-02"

// CreateAssignmentRequest 新增作业
type CreateAssignmentRequest struct {
	Title    string `json:"title"    binding:"required,notblank,max=255"`
	Subject  string `json:"subject"  binding:"max=255"`
	DueDate  string `json:"due_date" binding:"required,datetime=2006-01-02"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Notes    string `json:"notes"    binding:"max=2000"`
}

// UpdateAssignmentRequest 修改作业（字段为空表示不修改）
type UpdateAssignmentRequest struct {
	Title     *string `json:"title"     binding:"omitempty,notblank,max=255"`
	Subject   *string `json:"subject"   binding:"omitempty,max=255"`
	DueDate   *string `json:"due_date"  binding:"omitempty,datetime=2006-01-02"`
	Priority  *string `json:"priority"  binding:"omitempty,oneof=low medium high"`
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes"     binding:"omitempty,max=2000"`
}

// 作业列表筛选
const (
	AssignmentFilterAll       = "all"
	AssignmentFilterActive    = "active"
	AssignmentFilterCompleted = "completed"
)

// AssignmentListRequest 作业列表查询参数
type AssignmentListRequest struct {
	Filter string `form:"filter" binding:"omitempty,oneof=all active completed"`
}

// AssignmentResponse 作业
type AssignmentResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Subject      string `json:"subject"`
	DueDate      string `json:"due_date"`
	Priority     string `json:"priority"`
	Completed    bool   `json:"completed"`
	Notes        string `json:"notes"`
	DaysUntilDue int    `json:"days_until_due"`
	Overdue      bool   `json:"overdue"`
	CreatedAt    string `json:"created_at"`
}

// AssignmentStatsResponse 作业统计
type AssignmentStatsResponse struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}
