package model

// 用户角色
const (
	RoleStudent    = "student"
	RoleCoach      = "coach"
	RoleInstructor = "instructor"
)

// ValidRole 判断角色是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleCoach, RoleInstructor:
		return true
	}
	return false
}

// IsStaff 教练与讲师可录入评估证据、查看学生名单
func IsStaff(role string) bool {
	return role == RoleCoach || role == RoleInstructor
}

// User 用户表 — 对应 users
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"             json:"-"`
	Name         string `gorm:"type:varchar(255);not null"             json:"name"`
	Role         string `gorm:"type:varchar(50);not null"              json:"role"`

	// 关联（删除用户时级联删除其学习计划与作业）
	StudySessions []StudySession `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Assignments   []Assignment   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
