package dto

// ── 评估证据 DTO ──

// CreateEvidenceRequest 录入评估证据
type CreateEvidenceRequest struct {
	StudentName    string `json:"student_name"    binding:"required,notblank,max=255"`
	StudentEmail   string `json:"student_email"   binding:"required,email,max=255"`
	Subject        string `json:"subject"         binding:"max=255"`
	RubricCategory string `json:"rubric_category" binding:"required,rubric_category"`
	Score          int    `json:"score"           binding:"min=0"`
	MaxScore       int    `json:"max_score"       binding:"omitempty,min=1,max=100"`
	Description    string `json:"description"     binding:"required,notblank"`
	Notes          string `json:"notes"           binding:"max=2000"`
}

// EvidenceListRequest 评估证据查询参数
// Category 为空或 "All" 表示不过滤
type EvidenceListRequest struct {
	Search   string `form:"search"   binding:"max=100"`
	Category string `form:"category"`
}

// EvidenceResponse 评估证据
type EvidenceResponse struct {
	ID             string  `json:"id"`
	StudentName    string  `json:"student_name"`
	StudentEmail   string  `json:"student_email"`
	Subject        string  `json:"subject"`
	RubricCategory string  `json:"rubric_category"`
	Score          int     `json:"score"`
	MaxScore       int     `json:"max_score"`
	Percent        float64 `json:"percent"`
	Description    string  `json:"description"`
	Notes          string  `json:"notes"`
	EvaluatedBy    string  `json:"evaluated_by"`
	DateSubmitted  string  `json:"date_submitted"`
}

// EvidenceStatsResponse 评估证据统计
type EvidenceStatsResponse struct {
	TotalEvidence  int     `json:"total_evidence"`
	AverageScore   float64 `json:"average_score"` // 平均得分百分比，保留一位小数
	UniqueStudents int     `json:"unique_students"`
}
