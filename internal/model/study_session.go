package model

// Weekdays 周一至周日，顺序即学习计划的展示顺序
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// WeekdayIndex 返回星期在 Weekdays 中的下标，非法值返回 -1
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

// StudySession 每周学习计划 — 对应 study_sessions
type StudySession struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;index"   json:"user_id"`
	Subject   string `gorm:"type:varchar(255);not null" json:"subject"`
	Day       string `gorm:"type:varchar(20);not null"  json:"day"`
	StartTime string `gorm:"type:varchar(10);not null"  json:"start_time"` // HH:MM
	Duration  int    `gorm:"not null"                   json:"duration"`   // 分钟
	Notes     string `gorm:"type:text;not null;default:''" json:"notes"`
}

// TableName 指定表名
func (StudySession) TableName() string { return "study_sessions" }
