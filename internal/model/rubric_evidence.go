package model

import "time"

// RubricCategories 评估维度（固定六项）
var RubricCategories = []string{
	"Time Management",
	"Study Techniques",
	"Organization",
	"Focus & Concentration",
	"Goal Setting",
	"Self-Assessment",
}

// ValidRubricCategory 判断评估维度是否合法
func ValidRubricCategory(c string) bool {
	for _, rc := range RubricCategories {
		if rc == c {
			return true
		}
	}
	return false
}

// RubricEvidence 评估证据 — 对应 rubric_evidence
// 由教练/讲师录入，学生通过 StudentEmail 查看自己的记录
type RubricEvidence struct {
	BaseModel
	EvaluatorID    *string   `gorm:"type:uuid;index"             json:"evaluator_id,omitempty"`
	StudentName    string    `gorm:"type:varchar(255);not null"  json:"student_name"`
	StudentEmail   string    `gorm:"type:varchar(255);not null"  json:"student_email"`
	Subject        string    `gorm:"type:varchar(255);not null;default:''" json:"subject"`
	RubricCategory string    `gorm:"type:varchar(255);not null"  json:"rubric_category"`
	Score          int       `gorm:"not null"                    json:"score"`
	MaxScore       int       `gorm:"not null"                    json:"max_score"`
	Description    string    `gorm:"type:text;not null"          json:"description"`
	Notes          string    `gorm:"type:text;not null;default:''" json:"notes"`
	EvaluatedBy    string    `gorm:"type:varchar(255);not null"  json:"evaluated_by"`
	DateSubmitted  time.Time `gorm:"type:date;not null"          json:"date_submitted"`

	Evaluator *User `gorm:"foreignKey:EvaluatorID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName 指定表名（与历史表名保持一致，不加复数）
func (RubricEvidence) TableName() string { return "rubric_evidence" }

// Percent 得分百分比
func (e *RubricEvidence) Percent() float64 {
	if e.MaxScore <= 0 {
		return 0
	}
	return float64(e.Score) / float64(e.MaxScore) * 100
}
