package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"study-hub/internal/model"
)

// EvidenceFilters 评估证据筛选条件
type EvidenceFilters struct {
	StudentEmail string // 非空时仅返回该学生的记录（不区分大小写）
	Search       string // 匹配学生姓名、科目、描述
	Category     string
}

// EvidenceRepository 评估证据数据访问接口
type EvidenceRepository interface {
	Create(ctx context.Context, e *model.RubricEvidence) error
	GetByID(ctx context.Context, id string) (*model.RubricEvidence, error)
	List(ctx context.Context, filters *EvidenceFilters) ([]model.RubricEvidence, error)
	Delete(ctx context.Context, id string) error
}

type evidenceRepo struct {
	db *gorm.DB
}

// NewEvidenceRepo 创建 EvidenceRepository 实例
func NewEvidenceRepo(db *gorm.DB) EvidenceRepository {
	return &evidenceRepo{db: db}
}

func (r *evidenceRepo) Create(ctx context.Context, e *model.RubricEvidence) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *evidenceRepo) GetByID(ctx context.Context, id string) (*model.RubricEvidence, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var e model.RubricEvidence
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *evidenceRepo) List(ctx context.Context, filters *EvidenceFilters) ([]model.RubricEvidence, error) {
	var list []model.RubricEvidence
	db := r.db.WithContext(ctx).Model(&model.RubricEvidence{})

	if filters != nil {
		if filters.StudentEmail != "" {
			db = db.Where("LOWER(student_email) = ?", strings.ToLower(filters.StudentEmail))
		}
		if filters.Category != "" {
			db = db.Where("rubric_category = ?", filters.Category)
		}
		if filters.Search != "" {
			kw := containsPattern(filters.Search)
			db = db.Where(
				`LOWER(student_name) LIKE ? ESCAPE '\' OR LOWER(subject) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`,
				kw, kw, kw,
			)
		}
	}

	err := db.Order("date_submitted DESC, created_at DESC").Find(&list).Error
	return list, err
}

func (r *evidenceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RubricEvidence{}).Error
}
