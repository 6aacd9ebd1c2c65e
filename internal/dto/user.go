package dto

// ── 用户模块 DTO ──

// UserResponse 用户公开信息（不含密码哈希）
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// UserDetailResponse 用户详细信息
type UserDetailResponse struct {
	UserResponse
	CreatedAt string `json:"created_at"`
}

// UserListRequest 用户列表查询参数（教练/讲师查看学生名单）
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=student coach instructor"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}
