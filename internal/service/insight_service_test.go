package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"study-hub/internal/dto"
	"study-hub/internal/model"
)

var insightToday = mustDate("2026-03-10")

func insightIDs(insights []dto.InsightResponse) string {
	ids := make([]string, len(insights))
	for i, in := range insights {
		ids[i] = in.ID
	}
	return strings.Join(ids, ",")
}

type assignmentSeed struct {
	subject   string
	due       string
	completed bool
}

func assignments(seeds ...assignmentSeed) []model.Assignment {
	out := make([]model.Assignment, len(seeds))
	for i, s := range seeds {
		out[i] = model.Assignment{Subject: s.subject, DueDate: mustDate(s.due), Completed: s.completed}
	}
	return out
}

func sessionsOn(days []string, duration int) []model.StudySession {
	out := make([]model.StudySession, len(days))
	for i, d := range days {
		out[i] = model.StudySession{Day: d, StartTime: "09:00", Duration: duration}
	}
	return out
}

func TestEvaluateInsights_EmptyData(t *testing.T) {
	got := evaluateInsights(nil, nil, insightToday, 1)
	// 0 作业按 0% 计 → 2；无计划 → 5；固定推荐 → 9
	if ids := insightIDs(got); ids != "2,5,9" {
		t.Errorf("期望 2,5,9，实际 %s", ids)
	}
	if got[0].Description != "Your completion rate is 0%. Consider breaking tasks into smaller chunks." {
		t.Errorf("描述不符: %s", got[0].Description)
	}
}

func TestEvaluateInsights_AllRules(t *testing.T) {
	as := assignments(
		assignmentSeed{"Math", "2026-03-01", true},
		assignmentSeed{"Math", "2026-03-02", true},
		assignmentSeed{"Physics", "2026-03-03", true},
		assignmentSeed{"Math", "2026-03-04", true},
		assignmentSeed{"Physics", "2026-03-05", false}, // 逾期
	)
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Monday", "Tuesday"}
	got := evaluateInsights(as, sessionsOn(days, 120), insightToday, 8)

	if ids := insightIDs(got); ids != "1,3,4,6,7,8,9" {
		t.Fatalf("期望 1,3,4,6,7,8,9，实际 %s", ids)
	}
	if got[0].Description != "You've completed 80% of your assignments. Keep up the amazing work!" {
		t.Errorf("完成率描述不符: %s", got[0].Description)
	}
	if got[1].Description != "You have 1 overdue assignment. Prioritize these to get back on track." {
		t.Errorf("逾期描述不符: %s", got[1].Description)
	}
	if !strings.Contains(got[2].Description, "across 5 days") || got[2].Action != "" {
		t.Errorf("规律性成就不符: %+v", got[2])
	}
	if !strings.HasPrefix(got[3].Description, "Math appears frequently") {
		t.Errorf("科目推荐不符: %s", got[3].Description)
	}
	if !strings.Contains(got[5].Description, "for 8 days") {
		t.Errorf("连续使用描述不符: %s", got[5].Description)
	}
}

func TestEvaluateInsights_MiddleBandsProduceNothing(t *testing.T) {
	// 完成率 60%（介于 50 与 80 之间），4 条计划（介于 3 与 7 之间），平均 90 分钟（不超过 90）
	as := assignments(
		assignmentSeed{"", "2026-04-01", true},
		assignmentSeed{"", "2026-04-01", true},
		assignmentSeed{"", "2026-04-01", true},
		assignmentSeed{"", "2026-04-01", false},
		assignmentSeed{"", "2026-04-01", false},
	)
	got := evaluateInsights(as, sessionsOn([]string{"Monday", "Tuesday", "Friday", "Friday"}, 90), insightToday, 6)
	if ids := insightIDs(got); ids != "9" {
		t.Errorf("期望仅 9，实际 %s", ids)
	}
}

func TestEvaluateInsights_OverduePlural(t *testing.T) {
	as := assignments(
		assignmentSeed{"", "2026-03-01", false},
		assignmentSeed{"", "2026-03-09", false},
		assignmentSeed{"", "2026-03-10", false}, // 今天到期不算逾期
	)
	got := evaluateInsights(as, nil, insightToday, 1)
	var overdue *dto.InsightResponse
	for i := range got {
		if got[i].ID == "3" {
			overdue = &got[i]
		}
	}
	if overdue == nil {
		t.Fatal("缺少逾期提醒")
	}
	if overdue.Description != "You have 2 overdue assignments. Prioritize these to get back on track." {
		t.Errorf("复数描述不符: %s", overdue.Description)
	}
}

func TestEvaluateInsights_SessionsNotSpread(t *testing.T) {
	// 7 条计划但只覆盖 3 天：既无成就也无建议
	days := []string{"Monday", "Monday", "Monday", "Tuesday", "Tuesday", "Friday", "Friday"}
	got := evaluateInsights(nil, sessionsOn(days, 30), insightToday, 1)
	if ids := insightIDs(got); ids != "2,9" {
		t.Errorf("期望 2,9，实际 %s", ids)
	}
}

func TestMostCommonSubject(t *testing.T) {
	tests := []struct {
		name     string
		subjects []string
		want     string
	}{
		{"无科目", []string{"", ""}, ""},
		{"唯一最多", []string{"Math", "Art", "Math"}, "Math"},
		{"并列取首次出现较晚者", []string{"Math", "Art", "Art", "Math"}, "Art"},
		{"忽略空科目", []string{"", "", "Bio"}, "Bio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as := make([]model.Assignment, len(tt.subjects))
			for i, s := range tt.subjects {
				as[i].Subject = s
			}
			if got := mostCommonSubject(as); got != tt.want {
				t.Errorf("期望 %q，实际 %q", tt.want, got)
			}
		})
	}
}

func TestInsightService_Generate(t *testing.T) {
	repos := newTestRepos()
	svc := NewInsightService(repos.repo, zap.NewNop()).(*insightService)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	svc.now = fixedNow(now)
	svc.streak = func(string) int { return 7 }

	ctx := context.Background()
	_ = repos.assignments.Create(ctx, &model.Assignment{UserID: "u1", Subject: "Art", DueDate: mustDate("2026-03-20"), Completed: true})
	_ = repos.assignments.Create(ctx, &model.Assignment{UserID: "u2", Subject: "Math", DueDate: mustDate("2026-03-01")})

	resp, err := svc.Generate(ctx, "u1")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}
	if ids := insightIDs(resp.Insights); ids != "1,5,6,8,9" {
		t.Errorf("期望 1,5,6,8,9，实际 %s", ids)
	}
	if resp.GeneratedAt != "2026-03-10T08:00:00Z" {
		t.Errorf("生成时间不符: %s", resp.GeneratedAt)
	}
}

func TestRandomStreak_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		if v := randomStreak("u"); v < 1 || v > 10 {
			t.Fatalf("随机连续天数越界: %d", v)
		}
	}
}
