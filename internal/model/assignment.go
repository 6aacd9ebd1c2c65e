package model

import "time"

// 作业优先级
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority 判断优先级是否合法
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Assignment 作业与目标 — 对应 assignments
type Assignment struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index"           json:"user_id"`
	Title     string    `gorm:"type:varchar(255);not null"         json:"title"`
	Subject   string    `gorm:"type:varchar(255);not null;default:''" json:"subject"`
	DueDate   time.Time `gorm:"type:date;not null"                 json:"due_date"`
	Priority  string    `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Completed bool      `gorm:"not null;default:false"             json:"completed"`
	Notes     string    `gorm:"type:text;not null;default:''"      json:"notes"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// IsOverdue 未完成且截止日期早于 today（UTC 当天零点）
func (a *Assignment) IsOverdue(today time.Time) bool {
	due := time.Date(a.DueDate.Year(), a.DueDate.Month(), a.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	return !a.Completed && due.Before(today)
}
