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

// ── 作业模块业务错误 ──

var (
	ErrAssignmentNotFound = errors.New("Assignment not found")
	ErrInvalidDueDate     = errors.New("due_date must be a date in YYYY-MM-DD format")
)

// AssignmentService 作业业务接口
type AssignmentService interface {
	// List 未完成在前，同组内按截止日期升序
	List(ctx context.Context, userID, filter string) ([]dto.AssignmentResponse, error)
	Stats(ctx context.Context, userID string) (*dto.AssignmentStatsResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	Toggle(ctx context.Context, userID, id string) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context, userID, filter string) ([]dto.AssignmentResponse, error) {
	var completed *bool
	switch filter {
	case dto.AssignmentFilterActive:
		v := false
		completed = &v
	case dto.AssignmentFilterCompleted:
		v := true
		completed = &v
	}

	list, err := s.repo.Assignment.ListByUser(ctx, userID, completed)
	if err != nil {
		s.logger.Error("查询作业失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	sortAssignments(list)

	today := todayUTC(s.now())
	result := make([]dto.AssignmentResponse, 0, len(list))
	for i := range list {
		result = append(result, toAssignmentResponse(&list[i], today))
	}
	return result, nil
}

// ────────────────────── Stats ──────────────────────

func (s *assignmentService) Stats(ctx context.Context, userID string) (*dto.AssignmentStatsResponse, error) {
	list, err := s.repo.Assignment.ListByUser(ctx, userID, nil)
	if err != nil {
		s.logger.Error("查询作业失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	today := todayUTC(s.now())
	stats := &dto.AssignmentStatsResponse{Total: len(list)}
	for i := range list {
		a := &list[i]
		if a.Completed {
			stats.Completed++
			continue
		}
		stats.Active++
		if a.IsOverdue(today) {
			stats.Overdue++
		}
	}
	return stats, nil
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, userID string, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	due, err := time.Parse(dto.DateLayout, req.DueDate)
	if err != nil {
		return nil, ErrInvalidDueDate
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	a := &model.Assignment{
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Subject:  strings.TrimSpace(req.Subject),
		DueDate:  due,
		Priority: priority,
		Notes:    req.Notes,
	}

	if err := s.repo.Assignment.Create(ctx, a); err != nil {
		s.logger.Error("创建作业失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toAssignmentResponse(a, todayUTC(s.now()))
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *assignmentService) Update(ctx context.Context, userID, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	a, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.DueDate != nil {
		due, err := time.Parse(dto.DateLayout, *req.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		a.DueDate = due
	}
	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subject != nil {
		a.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Priority != nil {
		a.Priority = *req.Priority
	}
	if req.Completed != nil {
		a.Completed = *req.Completed
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}

	return s.save(ctx, a)
}

// ────────────────────── Toggle ──────────────────────

func (s *assignmentService) Toggle(ctx context.Context, userID, id string) (*dto.AssignmentResponse, error) {
	a, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	a.Completed = !a.Completed
	return s.save(ctx, a)
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		s.logger.Error("删除作业失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *assignmentService) save(ctx context.Context, a *model.Assignment) (*dto.AssignmentResponse, error) {
	if err := s.repo.Assignment.Update(ctx, a); err != nil {
		s.logger.Error("更新作业失败", zap.String("id", a.ID), zap.Error(err))
		return nil, err
	}
	resp := toAssignmentResponse(a, todayUTC(s.now()))
	return &resp, nil
}

// getOwned 查询作业；不属于当前用户时按不存在处理
func (s *assignmentService) getOwned(ctx context.Context, userID, id string) (*model.Assignment, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrAssignmentNotFound
	}
	return a, nil
}

// sortAssignments 未完成在前，再按截止日期升序（日期相同保持原顺序）
func sortAssignments(list []model.Assignment) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Completed != list[j].Completed {
			return !list[i].Completed
		}
		return dateOnly(list[i].DueDate).Before(dateOnly(list[j].DueDate))
	})
}

// daysUntilDue 距截止日期的天数，今天为 0，已过期为负数
func daysUntilDue(due, today time.Time) int {
	return int(dateOnly(due).Sub(today).Hours() / 24)
}

func toAssignmentResponse(a *model.Assignment, today time.Time) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:           a.ID,
		Title:        a.Title,
		Subject:      a.Subject,
		DueDate:      a.DueDate.Format(dto.DateLayout),
		Priority:     a.Priority,
		Completed:    a.Completed,
		Notes:        a.Notes,
		DaysUntilDue: daysUntilDue(a.DueDate, today),
		Overdue:      a.IsOverdue(today),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}
