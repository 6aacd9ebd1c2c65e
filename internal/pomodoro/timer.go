// Package pomodoro 番茄钟状态机
//
// 计时不依赖后台协程：运行中的计时器只记录开始时刻与当时的剩余秒数，
// 每次读取时按当前时间推算剩余时间，归零后惰性切换到下一阶段并停止。
package pomodoro

import (
	"errors"
	"fmt"
	"time"
)

// 计时模式
const (
	ModeFocus = "focus"
	ModeBreak = "break"
)

// ErrInvalidMode 非法模式
var ErrInvalidMode = errors.New("无效的番茄钟模式")

// Timer 番茄钟状态（可直接 JSON 持久化）
type Timer struct {
	Mode              string    `json:"mode"`
	FocusMinutes      int       `json:"focus_minutes"`
	BreakMinutes      int       `json:"break_minutes"`
	RemainingSeconds  int       `json:"remaining_seconds"` // 运行中时为 StartedAt 时刻的剩余秒数
	Active            bool      `json:"active"`
	StartedAt         time.Time `json:"started_at"`
	SessionsCompleted int       `json:"sessions_completed"`
}

// New 创建处于专注模式、未启动的计时器
func New(focusMinutes, breakMinutes int) *Timer {
	return &Timer{
		Mode:             ModeFocus,
		FocusMinutes:     focusMinutes,
		BreakMinutes:     breakMinutes,
		RemainingSeconds: focusMinutes * 60,
	}
}

// Duration 当前模式的总秒数
func (t *Timer) Duration() int {
	if t.Mode == ModeBreak {
		return t.BreakMinutes * 60
	}
	return t.FocusMinutes * 60
}

// Remaining 按 now 推算剩余秒数（不修改状态，最小为 0）
func (t *Timer) Remaining(now time.Time) int {
	if !t.Active {
		return t.RemainingSeconds
	}
	elapsed := int(now.Sub(t.StartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	left := t.RemainingSeconds - elapsed
	if left < 0 {
		return 0
	}
	return left
}

// Advance 运行中的计时器归零时完成当前阶段：
// 专注结束计数加一并进入休息，休息结束回到专注；切换后计时器停止。
// 返回是否发生了切换
func (t *Timer) Advance(now time.Time) bool {
	if !t.Active || t.Remaining(now) > 0 {
		return false
	}

	if t.Mode == ModeFocus {
		t.SessionsCompleted++
		t.Mode = ModeBreak
	} else {
		t.Mode = ModeFocus
	}
	t.Active = false
	t.StartedAt = time.Time{}
	t.RemainingSeconds = t.Duration()
	return true
}

// Start 开始或继续计时
func (t *Timer) Start(now time.Time) {
	t.Advance(now)
	if t.Active {
		return
	}
	if t.RemainingSeconds <= 0 {
		t.RemainingSeconds = t.Duration()
	}
	t.Active = true
	t.StartedAt = now
}

// Pause 暂停计时并保留剩余时间
func (t *Timer) Pause(now time.Time) {
	if t.Advance(now) || !t.Active {
		return
	}
	t.RemainingSeconds = t.Remaining(now)
	t.Active = false
	t.StartedAt = time.Time{}
}

// Reset 停止并恢复当前模式的完整时长
func (t *Timer) Reset() {
	t.Active = false
	t.StartedAt = time.Time{}
	t.RemainingSeconds = t.Duration()
}

// SwitchMode 切换模式并停止计时
func (t *Timer) SwitchMode(mode string) error {
	if mode != ModeFocus && mode != ModeBreak {
		return ErrInvalidMode
	}
	t.Mode = mode
	t.Reset()
	return nil
}

// UpdateSettings 修改时长；未运行时立即按新时长重置当前阶段，
// 运行中时剩余时间不超过新的阶段时长
func (t *Timer) UpdateSettings(focusMinutes, breakMinutes int) {
	t.FocusMinutes = focusMinutes
	t.BreakMinutes = breakMinutes
	if !t.Active || t.RemainingSeconds > t.Duration() {
		t.RemainingSeconds = t.Duration()
	}
}

// Progress 当前阶段完成百分比
func (t *Timer) Progress(now time.Time) float64 {
	total := t.Duration()
	if total <= 0 {
		return 0
	}
	return float64(total-t.Remaining(now)) / float64(total) * 100
}

// FormatClock 秒数格式化为 MM:SS
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
