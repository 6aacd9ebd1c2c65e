package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"study-hub/internal/model"
)

// ── 学习计划 ICS 导出 ──────────────────────────────────────
//
//   - 每条学习计划对应一个 VEVENT，RRULE 为 FREQ=WEEKLY;BYDAY=<星期>
//   - 首次发生时间锚定在本周（周一为一周开始）对应的日期
//   - DTSTART/DTEND 使用不带时区的本地时间，由日历客户端按用户所在时区展示
// ─────────────────────────────────────────────────────────────

const (
	icsProductID   = "-//study-hub//Weekly Planner//EN"
	icsFloatLayout = "20060102T150405"
)

// icsWeekdays 与 model.Weekdays 一一对应
var icsWeekdays = []string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

func (s *exportService) ExportPlanner(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	sessions, err := s.repo.StudySession.ListByUser(ctx, userID, "")
	if err != nil {
		s.logger.Error("查询学习计划失败", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}

	now := s.now()
	cal := buildPlannerCalendar(sessions, weekStart(now), now)

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "study-planner.ics", nil
}

// buildPlannerCalendar 生成每周重复的学习计划日历
func buildPlannerCalendar(sessions []model.StudySession, monday, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("Study Planner")

	for i := range sessions {
		sess := &sessions[i]
		dayIdx := model.WeekdayIndex(sess.Day)
		start, ok := sessionStart(monday, dayIdx, sess.StartTime)
		if !ok {
			continue
		}
		end := start.Add(time.Duration(sess.Duration) * time.Minute)

		event := cal.AddEvent(sess.ID + "@study-hub")
		event.SetDtStampTime(stamp)
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsFloatLayout))
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icsFloatLayout))
		event.SetSummary(sess.Subject)
		if notes := strings.TrimSpace(sess.Notes); notes != "" {
			event.SetDescription(notes)
		}
		event.AddProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY;BYDAY="+icsWeekdays[dayIdx])
	}
	return cal
}

// weekStart 返回 t 所在周的周一零点
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // 周一=0 … 周日=6
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, -offset)
}

// sessionStart 由周一日期、星期下标与 HH:MM 计算本周的开始时刻
func sessionStart(monday time.Time, dayIdx int, hhmm string) (time.Time, bool) {
	if dayIdx < 0 || dayIdx >= len(icsWeekdays) {
		return time.Time{}, false
	}
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, false
	}
	day := monday.AddDate(0, 0, dayIdx)
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), true
}
