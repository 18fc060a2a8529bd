package dto

// ── 通知模块 DTO ──

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	TeacherID  string `form:"teacher_id" binding:"omitempty,uuid"`
	UnreadOnly bool   `form:"unread_only"`
	PaginationRequest
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacher_id"`
	Action    string `json:"action"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsRead    bool   `json:"is_read"`
	SessionID string `json:"session_id,omitempty"`
	CreatedAt string `json:"created_at"`
}
