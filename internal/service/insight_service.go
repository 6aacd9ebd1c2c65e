package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"study-hub/internal/dto"
	"study-hub/internal/model"
	"study-hub/internal/repository"
)

// 洞察阈值
const (
	highCompletionRate   = 80
	lowCompletionRate    = 50
	consistentSessions   = 7
	consistentDays       = 5
	sparseSessions       = 3
	longSessionMinutes   = 90
	streakAchievementDay = 7
	maxStreakDays        = 10
)

// InsightService 学习洞察：对当前用户的作业与学习计划按固定顺序逐条判定，不持久化
type InsightService interface {
	Generate(ctx context.Context, userID string) (*dto.InsightsResponse, error)
}

// StreakFunc 返回用户连续使用天数
type StreakFunc func(userID string) int

// randomStreak 尚无使用记录统计，以 1~10 的随机值代替
func randomStreak(string) int {
	return rand.Intn(maxStreakDays) + 1
}

type insightService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
	streak StreakFunc
}

// NewInsightService 创建 InsightService 实例
func NewInsightService(repo *repository.Repository, logger *zap.Logger) InsightService {
	return &insightService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		streak: randomStreak,
	}
}

func (s *insightService) Generate(ctx context.Context, userID string) (*dto.InsightsResponse, error) {
	assignments, err := s.repo.Assignment.ListByUser(ctx, userID, nil)
	if err != nil {
		s.logger.Error("查询作业失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	sessions, err := s.repo.StudySession.ListByUser(ctx, userID, "")
	if err != nil {
		s.logger.Error("查询学习计划失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 科目统计依赖录入顺序
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].CreatedAt.Before(assignments[j].CreatedAt)
	})

	now := s.now()
	insights := evaluateInsights(assignments, sessions, todayUTC(now), s.streak(userID))

	return &dto.InsightsResponse{
		Insights:    insights,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}, nil
}

// evaluateInsights 按顺序判定各条规则
func evaluateInsights(assignments []model.Assignment, sessions []model.StudySession, today time.Time, streak int) []dto.InsightResponse {
	insights := make([]dto.InsightResponse, 0, 9)

	// 1. 完成率（无作业按 0% 计）
	completed := 0
	for i := range assignments {
		if assignments[i].Completed {
			completed++
		}
	}
	var rate float64
	if len(assignments) > 0 {
		rate = float64(completed) / float64(len(assignments)) * 100
	}
	ratePct := int(math.Round(rate))

	switch {
	case rate >= highCompletionRate:
		insights = append(insights, dto.InsightResponse{
			ID:          "1",
			Type:        dto.InsightSuccess,
			Title:       "Excellent Completion Rate!",
			Description: fmt.Sprintf("You've completed %d%% of your assignments. Keep up the amazing work!", ratePct),
			Action:      "Continue your current study habits",
		})
	case rate < lowCompletionRate:
		insights = append(insights, dto.InsightResponse{
			ID:          "2",
			Type:        dto.InsightWarning,
			Title:       "Assignment Completion Needs Attention",
			Description: fmt.Sprintf("Your completion rate is %d%%. Consider breaking tasks into smaller chunks.", ratePct),
			Action:      "Review your time management strategy",
		})
	}

	// 2. 逾期作业
	overdue := 0
	for i := range assignments {
		if assignments[i].IsOverdue(today) {
			overdue++
		}
	}
	if overdue > 0 {
		plural := ""
		if overdue > 1 {
			plural = "s"
		}
		insights = append(insights, dto.InsightResponse{
			ID:          "3",
			Type:        dto.InsightWarning,
			Title:       "Overdue Assignments Detected",
			Description: fmt.Sprintf("You have %d overdue assignment%s. Prioritize these to get back on track.", overdue, plural),
			Action:      "Focus on overdue tasks first",
		})
	}

	// 3. 学习计划规律性
	if len(sessions) >= consistentSessions {
		days := make(map[string]struct{})
		for i := range sessions {
			days[sessions[i].Day] = struct{}{}
		}
		if len(days) >= consistentDays {
			insights = append(insights, dto.InsightResponse{
				ID:          "4",
				Type:        dto.InsightAchievement,
				Title:       "Consistent Study Schedule!",
				Description: fmt.Sprintf("You've planned study sessions across %d days of the week. Consistency is key to success!", len(days)),
			})
		}
	} else if len(sessions) < sparseSessions {
		insights = append(insights, dto.InsightResponse{
			ID:          "5",
			Type:        dto.InsightSuggestion,
			Title:       "Build a Regular Study Routine",
			Description: "Research shows that regular study schedules improve retention by up to 40%. Try planning at least 3-5 sessions per week.",
			Action:      "Add more study sessions to your planner",
		})
	}

	// 4. 出现最多的科目
	if subject := mostCommonSubject(assignments); subject != "" {
		insights = append(insights, dto.InsightResponse{
			ID:          "6",
			Type:        dto.InsightSuggestion,
			Title:       "Subject-Specific Strategy",
			Description: fmt.Sprintf("%s appears frequently in your assignments. Consider creating a dedicated study group or finding a tutor for this subject.", subject),
			Action:      "Explore additional resources",
		})
	}

	// 5. 平均单次时长
	if len(sessions) > 0 {
		total := 0
		for i := range sessions {
			total += sessions[i].Duration
		}
		if float64(total)/float64(len(sessions)) > longSessionMinutes {
			insights = append(insights, dto.InsightResponse{
				ID:          "7",
				Type:        dto.InsightSuggestion,
				Title:       "Optimize Session Length",
				Description: "Your average study session is over 90 minutes. Research suggests 25-50 minute sessions with breaks are more effective.",
				Action:      "Try using the Pomodoro Timer",
			})
		}
	}

	// 6. 连续使用
	if streak >= streakAchievementDay {
		insights = append(insights, dto.InsightResponse{
			ID:          "8",
			Type:        dto.InsightAchievement,
			Title:       "Weekly Streak Achievement! 🎉",
			Description: fmt.Sprintf("You've been actively using the app for %d days. Building good habits takes time - you're doing great!", streak),
		})
	}

	// 7. 固定推荐
	insights = append(insights, dto.InsightResponse{
		ID:          "9",
		Type:        dto.InsightSuggestion,
		Title:       "AI-Recommended Study Technique",
		Description: `Based on your study patterns, try the "Feynman Technique": Explain concepts in simple terms as if teaching someone else. This improves understanding by 30%.`,
		Action:      "Try this technique in your next session",
	})

	return insights
}

// mostCommonSubject 出现次数最多的非空科目；次数相同时取首次出现较晚者
func mostCommonSubject(assignments []model.Assignment) string {
	counts := make(map[string]int)
	var order []string
	for i := range assignments {
		subj := assignments[i].Subject
		if subj == "" {
			continue
		}
		if counts[subj] == 0 {
			order = append(order, subj)
		}
		counts[subj]++
	}

	best := ""
	for _, subj := range order {
		if counts[subj] >= counts[best] {
			best = subj
		}
	}
	return best
}
