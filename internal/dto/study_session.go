package dto

// ── 学习计划 DTO ──

// CreateStudySessionRequest 新增学习计划
type CreateStudySessionRequest struct {
	Subject   string `json:"subject"    binding:"required,notblank,max=255"`
	Day       string `json:"day"        binding:"required,weekday"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	Duration  int    `json:"duration"   binding:"required,min=1,max=720"`
	Notes     string `json:"notes"      binding:"max=2000"`
}

// UpdateStudySessionRequest 修改学习计划（字段为空表示不修改）
type UpdateStudySessionRequest struct {
	Subject   *string `json:"subject"    binding:"omitempty,notblank,max=255"`
	Day       *string `json:"day"        binding:"omitempty,weekday"`
	StartTime *string `json:"start_time" binding:"omitempty,hhmm"`
	Duration  *int    `json:"duration"   binding:"omitempty,min=1,max=720"`
	Notes     *string `json:"notes"      binding:"omitempty,max=2000"`
}

// StudySessionListRequest 学习计划查询参数
type StudySessionListRequest struct {
	Day string `form:"day" binding:"omitempty,weekday"`
}

// StudySessionResponse 学习计划
type StudySessionResponse struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
}

// DayPlanResponse 某一天的学习计划
type DayPlanResponse struct {
	Day          string                 `json:"day"`
	Sessions     []StudySessionResponse `json:"sessions"`
	TotalMinutes int                    `json:"total_minutes"`
}

// WeeklyPlanResponse 一周学习计划（固定七天，按周一到周日）
type WeeklyPlanResponse struct {
	Days         []DayPlanResponse `json:"days"`
	SessionCount int               `json:"session_count"`
	TotalMinutes int               `json:"total_minutes"`
}
