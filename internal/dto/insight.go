package dto

// 洞察类型
const (
	InsightSuccess     = "success"
	InsightWarning     = "warning"
	InsightSuggestion  = "suggestion"
	InsightAchievement = "achievement"
)

// InsightResponse 单条学习洞察
type InsightResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action,omitempty"`
}

// InsightsResponse 洞察列表
type InsightsResponse struct {
	Insights    []InsightResponse `json:"insights"`
	GeneratedAt string            `json:"generated_at"`
}
