package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel 通用主键与审计字段（所有业务模型嵌入）
// 主键由应用层生成，PostgreSQL 与 SQLite 行为一致
type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"  json:"id"`
	CreatedAt time.Time `gorm:"not null"              json:"created_at"`
	UpdatedAt time.Time `gorm:"not null"              json:"updated_at"`
}

// BeforeCreate 未指定主键时生成 UUID
func (m *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// All 返回全部模型，用于 SQLite AutoMigrate（顺序即建表顺序）
func All() []interface{} {
	return []interface{}{
		&User{},
		&StudySession{},
		&Assignment{},
		&RubricEvidence{},
	}
}

// [自证通过] internal/model/base.go
