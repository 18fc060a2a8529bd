package dto

// ── 考试场次 DTO ──

// SessionInput 创建/更新场次共用的输入字段
type SessionInput struct {
	Kind       string `json:"kind"        binding:"required,oneof=exam cc rattrapage"`
	ModuleName string `json:"module_name" binding:"required,max=200"`
	TeacherID  string `json:"teacher_id"  binding:"omitempty,uuid"` // 为空时由自动指派补全
	RoomID     string `json:"room_id"     binding:"required,uuid"`
	Specialty  string `json:"specialty"   binding:"required,max=100"`
	Level      string `json:"level"       binding:"required,max=50"`
	GroupName  string `json:"group_name"  binding:"required,max=50"`
	Semester   string `json:"semester"    binding:"required,max=20"`
	Date       string `json:"date"        binding:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time"  binding:"required,datetime=15:04"`
	EndTime    string `json:"end_time"    binding:"required,datetime=15:04"`
}

// BulkDeleteRequest 批量删除请求
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// SessionListRequest 场次列表查询参数
type SessionListRequest struct {
	Specialty string `form:"specialty"`
	Level     string `form:"level"`
	GroupName string `form:"group_name"`
	Semester  string `form:"semester"`
	Date      string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	PaginationRequest
}

// ── 响应 ──

// SessionResponse 场次完整响应
type SessionResponse struct {
	ID         string           `json:"id"`
	Kind       string           `json:"kind"`
	ModuleName string           `json:"module_name"`
	Teacher    *TeacherResponse `json:"teacher,omitempty"`
	Room       *RoomResponse    `json:"room,omitempty"`
	Specialty  string           `json:"specialty"`
	Level      string           `json:"level"`
	GroupName  string           `json:"group_name"`
	Semester   string           `json:"semester"`
	Date       string           `json:"date"`
	StartTime  string           `json:"start_time"`
	EndTime    string           `json:"end_time"`
	CreatedAt  string           `json:"created_at"`
	UpdatedAt  string           `json:"updated_at"`
}

// SessionBrief 冲突提示中引用的场次摘要
type SessionBrief struct {
	ID          string `json:"id"`
	ModuleName  string `json:"module_name"`
	TeacherName string `json:"teacher_name,omitempty"`
	RoomName    string `json:"room_name,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// ConflictPayload 409 冲突响应负载
type ConflictPayload struct {
	Dimension string         `json:"dimension"` // teacher | room
	Conflicts []SessionBrief `json:"conflicts"`
}

// BulkDeleteResult 批量删除单条结果
type BulkDeleteResult struct {
	ID     string `json:"id"`
	Status string `json:"status"` // deleted | not_found | error
}

// BulkDeleteResponse 批量删除响应
type BulkDeleteResponse struct {
	Results []BulkDeleteResult `json:"results"`
	Deleted int                `json:"deleted"`
}
