package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"study-hub/config"
	"study-hub/internal/dto"
	"study-hub/internal/pomodoro"
	"study-hub/internal/repository"
)

// PomodoroService 番茄钟业务接口
// 每次读写都会先按当前时间推进状态，到点的阶段在下一次访问时完成切换
type PomodoroService interface {
	Get(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error)
	Start(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error)
	Pause(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error)
	Reset(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error)
	SwitchMode(ctx context.Context, userID, mode string) (*dto.PomodoroStateResponse, error)
	UpdateSettings(ctx context.Context, userID string, req *dto.UpdatePomodoroSettingsRequest) (*dto.PomodoroStateResponse, error)
}

type pomodoroService struct {
	cfg    *config.PomodoroConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewPomodoroService 创建 PomodoroService 实例
func NewPomodoroService(cfg *config.PomodoroConfig, repo *repository.Repository, logger *zap.Logger) PomodoroService {
	return &pomodoroService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *pomodoroService) Get(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error) {
	return s.apply(ctx, userID, func(*pomodoro.Timer, time.Time) error { return nil })
}

func (s *pomodoroService) Start(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error) {
	return s.apply(ctx, userID, func(t *pomodoro.Timer, now time.Time) error {
		t.Start(now)
		return nil
	})
}

func (s *pomodoroService) Pause(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error) {
	return s.apply(ctx, userID, func(t *pomodoro.Timer, now time.Time) error {
		t.Pause(now)
		return nil
	})
}

func (s *pomodoroService) Reset(ctx context.Context, userID string) (*dto.PomodoroStateResponse, error) {
	return s.apply(ctx, userID, func(t *pomodoro.Timer, _ time.Time) error {
		t.Reset()
		return nil
	})
}

func (s *pomodoroService) SwitchMode(ctx context.Context, userID, mode string) (*dto.PomodoroStateResponse, error) {
	return s.apply(ctx, userID, func(t *pomodoro.Timer, _ time.Time) error {
		return t.SwitchMode(mode)
	})
}

func (s *pomodoroService) UpdateSettings(ctx context.Context, userID string, req *dto.UpdatePomodoroSettingsRequest) (*dto.PomodoroStateResponse, error) {
	return s.apply(ctx, userID, func(t *pomodoro.Timer, _ time.Time) error {
		t.UpdateSettings(req.FocusMinutes, req.BreakMinutes)
		return nil
	})
}

// apply 读取（或初始化）状态，推进到 now，执行操作后保存
func (s *pomodoroService) apply(ctx context.Context, userID string, op func(*pomodoro.Timer, time.Time) error) (*dto.PomodoroStateResponse, error) {
	t, err := s.repo.Pomodoro.Get(ctx, userID)
	if err != nil {
		s.logger.Error("读取番茄钟状态失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if t == nil {
		t = pomodoro.New(s.cfg.FocusMinutes, s.cfg.BreakMinutes)
	}

	now := s.now()
	if t.Advance(now) {
		s.logger.Debug("番茄钟阶段完成",
			zap.String("user_id", userID),
			zap.String("mode", t.Mode),
			zap.Int("sessions_completed", t.SessionsCompleted),
		)
	}
	if err := op(t, now); err != nil {
		return nil, err
	}

	if err := s.repo.Pomodoro.Save(ctx, userID, t); err != nil {
		s.logger.Error("保存番茄钟状态失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toPomodoroResponse(t, now), nil
}

func toPomodoroResponse(t *pomodoro.Timer, now time.Time) *dto.PomodoroStateResponse {
	remaining := t.Remaining(now)
	return &dto.PomodoroStateResponse{
		Mode:              t.Mode,
		FocusMinutes:      t.FocusMinutes,
		BreakMinutes:      t.BreakMinutes,
		RemainingSeconds:  remaining,
		Display:           pomodoro.FormatClock(remaining),
		Progress:          t.Progress(now),
		Active:            t.Active,
		SessionsCompleted: t.SessionsCompleted,
	}
}
