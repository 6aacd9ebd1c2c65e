package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"study-hub/internal/dto"
	"study-hub/internal/model"
	"study-hub/internal/repository"
	pkgerrors "study-hub/pkg/errors"
)

// ErrStudySessionNotFound 学习计划不存在（或不属于当前用户）
var ErrStudySessionNotFound = errors.New("Study session not found")

// StudySessionService 每周学习计划业务接口
type StudySessionService interface {
	List(ctx context.Context, userID, day string) ([]dto.StudySessionResponse, error)
	Week(ctx context.Context, userID string) (*dto.WeeklyPlanResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateStudySessionRequest) (*dto.StudySessionResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateStudySessionRequest) (*dto.StudySessionResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type studySessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudySessionService 创建 StudySessionService 实例
func NewStudySessionService(repo *repository.Repository, logger *zap.Logger) StudySessionService {
	return &studySessionService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *studySessionService) List(ctx context.Context, userID, day string) ([]dto.StudySessionResponse, error) {
	sessions, err := s.listSorted(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	result := make([]dto.StudySessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, toStudySessionResponse(&sessions[i]))
	}
	return result, nil
}

// ────────────────────── Week ──────────────────────

func (s *studySessionService) Week(ctx context.Context, userID string) (*dto.WeeklyPlanResponse, error) {
	sessions, err := s.listSorted(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	// 固定七天，没有安排的日期返回空列表
	resp := &dto.WeeklyPlanResponse{Days: make([]dto.DayPlanResponse, len(model.Weekdays))}
	for i, day := range model.Weekdays {
		resp.Days[i] = dto.DayPlanResponse{Day: day, Sessions: []dto.StudySessionResponse{}}
	}

	for i := range sessions {
		idx := model.WeekdayIndex(sessions[i].Day)
		if idx < 0 {
			continue
		}
		d := &resp.Days[idx]
		d.Sessions = append(d.Sessions, toStudySessionResponse(&sessions[i]))
		d.TotalMinutes += sessions[i].Duration
		resp.SessionCount++
		resp.TotalMinutes += sessions[i].Duration
	}

	return resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *studySessionService) Create(ctx context.Context, userID string, req *dto.CreateStudySessionRequest) (*dto.StudySessionResponse, error) {
	session := &model.StudySession{
		UserID:    userID,
		Subject:   strings.TrimSpace(req.Subject),
		Day:       req.Day,
		StartTime: req.StartTime,
		Duration:  req.Duration,
		Notes:     req.Notes,
	}

	if err := s.repo.StudySession.Create(ctx, session); err != nil {
		s.logger.Error("创建学习计划失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toStudySessionResponse(session)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *studySessionService) Update(ctx context.Context, userID, id string, req *dto.UpdateStudySessionRequest) (*dto.StudySessionResponse, error) {
	session, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// 应用更新字段（仅更新非 nil 字段）
	if req.Subject != nil {
		session.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Day != nil {
		session.Day = *req.Day
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
	}
	if req.Duration != nil {
		session.Duration = *req.Duration
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}

	if err := s.repo.StudySession.Update(ctx, session); err != nil {
		s.logger.Error("更新学习计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toStudySessionResponse(session)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *studySessionService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.StudySession.Delete(ctx, id); err != nil {
		s.logger.Error("删除学习计划失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// getOwned 查询学习计划；不属于当前用户时按不存在处理
func (s *studySessionService) getOwned(ctx context.Context, userID, id string) (*model.StudySession, error) {
	session, err := s.repo.StudySession.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrStudySessionNotFound
		}
		s.logger.Error("查询学习计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrStudySessionNotFound
	}
	return session, nil
}

// listSorted 按周一到周日、再按开始时间排序
func (s *studySessionService) listSorted(ctx context.Context, userID, day string) ([]model.StudySession, error) {
	sessions, err := s.repo.StudySession.ListByUser(ctx, userID, day)
	if err != nil {
		s.logger.Error("查询学习计划失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		di, dj := model.WeekdayIndex(sessions[i].Day), model.WeekdayIndex(sessions[j].Day)
		if di != dj {
			return di < dj
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})
	return sessions, nil
}

func toStudySessionResponse(s *model.StudySession) dto.StudySessionResponse {
	return dto.StudySessionResponse{
		ID:        s.ID,
		Subject:   s.Subject,
		Day:       s.Day,
		StartTime: s.StartTime,
		Duration:  s.Duration,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}
