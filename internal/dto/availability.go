package dto

// ── 可用性查询 DTO ──
//
// 查询结果仅用于提交前的 UI 预过滤；最终裁决权在写入路径的冲突复检

// AvailabilityRequest 可用性查询公共参数
type AvailabilityRequest struct {
	Date             string `form:"date"       binding:"required,datetime=2006-01-02"`
	StartTime        string `form:"start"      binding:"required,datetime=15:04"`
	EndTime          string `form:"end"        binding:"required,datetime=15:04"`
	ExcludeSessionID string `form:"exclude_session_id" binding:"omitempty,uuid"`
}

// TeacherAvailabilityRequest 可用教师查询参数
type TeacherAvailabilityRequest struct {
	AvailabilityRequest
	ExcludeTeacherID string `form:"exclude_teacher_id" binding:"omitempty,uuid"`
}

// AutoAssignRequest 自动指派监考请求
type AutoAssignRequest struct {
	Date             string `json:"date"       binding:"required,datetime=2006-01-02"`
	StartTime        string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime          string `json:"end_time"   binding:"required,datetime=15:04"`
	ExcludeTeacherID string `json:"exclude_teacher_id" binding:"omitempty,uuid"`
}
