package dto

// ── 教师名册 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	Name      string `json:"name"      binding:"required,min=2,max=100"`
	Matricule string `json:"matricule" binding:"required,max=50"`
	Email     string `json:"email"     binding:"required,email"`
}

// UpdateTeacherRequest 更新教师请求
type UpdateTeacherRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     binding:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
}

// TeacherListRequest 教师列表查询参数
type TeacherListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// TeacherResponse 教师信息响应
type TeacherResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Matricule string `json:"matricule"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
}
