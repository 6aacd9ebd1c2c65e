package repository

import (
	"context"

	"gorm.io/gorm"

	"study-hub/internal/model"
)

// StudySessionRepository 学习计划数据访问接口
type StudySessionRepository interface {
	Create(ctx context.Context, s *model.StudySession) error
	GetByID(ctx context.Context, id string) (*model.StudySession, error)
	// ListByUser 按开始时间升序返回；day 为空时返回全部
	ListByUser(ctx context.Context, userID, day string) ([]model.StudySession, error)
	Update(ctx context.Context, s *model.StudySession) error
	Delete(ctx context.Context, id string) error
}

type studySessionRepo struct {
	db *gorm.DB
}

// NewStudySessionRepo 创建 StudySessionRepository 实例
func NewStudySessionRepo(db *gorm.DB) StudySessionRepository {
	return &studySessionRepo{db: db}
}

func (r *studySessionRepo) Create(ctx context.Context, s *model.StudySession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *studySessionRepo) GetByID(ctx context.Context, id string) (*model.StudySession, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var s model.StudySession
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studySessionRepo) ListByUser(ctx context.Context, userID, day string) ([]model.StudySession, error) {
	var sessions []model.StudySession
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if day != "" {
		db = db.Where("day = ?", day)
	}
	err := db.Order("start_time ASC, created_at ASC").Find(&sessions).Error
	return sessions, err
}

func (r *studySessionRepo) Update(ctx context.Context, s *model.StudySession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *studySessionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StudySession{}).Error
}
