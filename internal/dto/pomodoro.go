package dto

// PomodoroStateResponse 番茄钟当前状态
type PomodoroStateResponse struct {
	Mode              string  `json:"mode"`
	FocusMinutes      int     `json:"focus_minutes"`
	BreakMinutes      int     `json:"break_minutes"`
	RemainingSeconds  int     `json:"remaining_seconds"`
	Display           string  `json:"display"` // MM:SS
	Progress          float64 `json:"progress"`
	Active            bool    `json:"active"`
	SessionsCompleted int     `json:"sessions_completed"`
}

// SwitchPomodoroModeRequest 切换专注/休息
type SwitchPomodoroModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=focus break"`
}

// UpdatePomodoroSettingsRequest 修改时长
type UpdatePomodoroSettingsRequest struct {
	FocusMinutes int `json:"focus_minutes" binding:"required,min=1,max=120"`
	BreakMinutes int `json:"break_minutes" binding:"required,min=1,max=60"`
}
