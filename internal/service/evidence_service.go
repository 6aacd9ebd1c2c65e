package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"study-hub/internal/dto"
	"study-hub/internal/model"
	"study-hub/internal/repository"
	pkgerrors "study-hub/pkg/errors"
	applogger "study-hub/pkg/logger"
)

// defaultMaxScore 未填写满分时的默认值
const defaultMaxScore = 5

// ── 评估证据业务错误 ──

var (
	ErrEvidenceNotFound  = errors.New("Evidence not found")
	ErrScoreOutOfRange   = errors.New("score must be between 0 and max_score")
	ErrInvalidCategory   = errors.New("Invalid rubric category")
	ErrEvidenceNotAuthor = errors.New("Only the evaluator who recorded this evidence can delete it")
)

// categoryAll 查询参数中表示不过滤维度
const categoryAll = "All"

// EvidenceService 评估证据业务接口
type EvidenceService interface {
	// Create 仅教练/讲师可录入，评估人与提交日期取当前用户与当天
	Create(ctx context.Context, caller *Caller, req *dto.CreateEvidenceRequest) (*dto.EvidenceResponse, error)
	// List 教练/讲师查看全部，学生仅查看 student_email 与本人邮箱一致的记录；最新在前
	List(ctx context.Context, caller *Caller, req *dto.EvidenceListRequest) ([]dto.EvidenceResponse, error)
	Stats(ctx context.Context, caller *Caller) (*dto.EvidenceStatsResponse, error)
	// Delete 仅录入人本人可删除
	Delete(ctx context.Context, caller *Caller, id string) error
	Categories() []string
}

type evidenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewEvidenceService 创建 EvidenceService 实例
func NewEvidenceService(repo *repository.Repository, logger *zap.Logger) EvidenceService {
	return &evidenceService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *evidenceService) Create(ctx context.Context, caller *Caller, req *dto.CreateEvidenceRequest) (*dto.EvidenceResponse, error) {
	if !model.IsStaff(caller.Role) {
		return nil, ErrNoPermission
	}
	if !model.ValidRubricCategory(req.RubricCategory) {
		return nil, ErrInvalidCategory
	}

	maxScore := req.MaxScore
	if maxScore <= 0 {
		maxScore = defaultMaxScore
	}
	if req.Score < 0 || req.Score > maxScore {
		return nil, ErrScoreOutOfRange
	}

	evaluatorID := caller.UserID
	e := &model.RubricEvidence{
		EvaluatorID:    &evaluatorID,
		StudentName:    strings.TrimSpace(req.StudentName),
		StudentEmail:   normalizeEmail(req.StudentEmail),
		Subject:        strings.TrimSpace(req.Subject),
		RubricCategory: req.RubricCategory,
		Score:          req.Score,
		MaxScore:       maxScore,
		Description:    strings.TrimSpace(req.Description),
		Notes:          req.Notes,
		EvaluatedBy:    caller.Name,
		DateSubmitted:  todayUTC(s.now()),
	}

	if err := s.repo.Evidence.Create(ctx, e); err != nil {
		applogger.With(ctx, s.logger).Error("录入评估证据失败", zap.String("evaluator_id", caller.UserID), zap.Error(err))
		return nil, err
	}

	applogger.With(ctx, s.logger).Info("评估证据已录入",
		zap.String("id", e.ID),
		zap.String("evaluator_id", caller.UserID),
		zap.String("category", e.RubricCategory),
	)

	resp := toEvidenceResponse(e)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *evidenceService) List(ctx context.Context, caller *Caller, req *dto.EvidenceListRequest) ([]dto.EvidenceResponse, error) {
	filters, ok := s.visibleTo(caller)
	if !ok {
		return []dto.EvidenceResponse{}, nil
	}
	filters.Search = strings.TrimSpace(req.Search)
	if req.Category != categoryAll {
		filters.Category = req.Category
	}

	list, err := s.repo.Evidence.List(ctx, filters)
	if err != nil {
		applogger.With(ctx, s.logger).Error("查询评估证据失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EvidenceResponse, 0, len(list))
	for i := range list {
		result = append(result, toEvidenceResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Stats ──────────────────────

func (s *evidenceService) Stats(ctx context.Context, caller *Caller) (*dto.EvidenceStatsResponse, error) {
	filters, ok := s.visibleTo(caller)
	if !ok {
		return &dto.EvidenceStatsResponse{}, nil
	}

	list, err := s.repo.Evidence.List(ctx, filters)
	if err != nil {
		applogger.With(ctx, s.logger).Error("查询评估证据失败", zap.Error(err))
		return nil, err
	}

	stats := &dto.EvidenceStatsResponse{TotalEvidence: len(list)}
	if len(list) == 0 {
		return stats, nil
	}

	var sum float64
	students := make(map[string]struct{}, len(list))
	for i := range list {
		sum += list[i].Percent()
		students[normalizeEmail(list[i].StudentEmail)] = struct{}{}
	}
	stats.AverageScore = math.Round(sum/float64(len(list))*10) / 10
	stats.UniqueStudents = len(students)
	return stats, nil
}

// ────────────────────── Delete ──────────────────────

func (s *evidenceService) Delete(ctx context.Context, caller *Caller, id string) error {
	if !model.IsStaff(caller.Role) {
		return ErrNoPermission
	}

	e, err := s.repo.Evidence.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrEvidenceNotFound
		}
		applogger.With(ctx, s.logger).Error("查询评估证据失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if e.EvaluatorID == nil || *e.EvaluatorID != caller.UserID {
		return ErrEvidenceNotAuthor
	}

	if err := s.repo.Evidence.Delete(ctx, id); err != nil {
		applogger.With(ctx, s.logger).Error("删除评估证据失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *evidenceService) Categories() []string {
	out := make([]string, len(model.RubricCategories))
	copy(out, model.RubricCategories)
	return out
}

// visibleTo 学生只能看到与本人邮箱匹配的记录；无邮箱的非教职身份不可见任何记录
func (s *evidenceService) visibleTo(caller *Caller) (*repository.EvidenceFilters, bool) {
	filters := &repository.EvidenceFilters{}
	if model.IsStaff(caller.Role) {
		return filters, true
	}
	filters.StudentEmail = normalizeEmail(caller.Email)
	return filters, filters.StudentEmail != ""
}

func toEvidenceResponse(e *model.RubricEvidence) dto.EvidenceResponse {
	return dto.EvidenceResponse{
		ID:             e.ID,
		StudentName:    e.StudentName,
		StudentEmail:   e.StudentEmail,
		Subject:        e.Subject,
		RubricCategory: e.RubricCategory,
		Score:          e.Score,
		MaxScore:       e.MaxScore,
		Percent:        math.Round(e.Percent()*10) / 10,
		Description:    e.Description,
		Notes:          e.Notes,
		EvaluatedBy:    e.EvaluatedBy,
		DateSubmitted:  e.DateSubmitted.Format(dto.DateLayout),
	}
}
