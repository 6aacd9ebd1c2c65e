package repository

import (
	"context"

	"gorm.io/gorm"

	"study-hub/internal/model"
)

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	// ListByUser 未完成在前、截止日期升序；completed 为 nil 时不过滤
	ListByUser(ctx context.Context, userID string, completed *bool) ([]model.Assignment, error)
	Update(ctx context.Context, a *model.Assignment) error
	Delete(ctx context.Context, id string) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) ListByUser(ctx context.Context, userID string, completed *bool) ([]model.Assignment, error) {
	var list []model.Assignment
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if completed != nil {
		db = db.Where("completed = ?", *completed)
	}
	err := db.Order("completed ASC, due_date ASC, created_at ASC").Find(&list).Error
	return list, err
}

func (r *assignmentRepo) Update(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Assignment{}).Error
}
