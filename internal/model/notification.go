package model

import "time"

// 通知动作
const (
	ActionCreated = "created" // 新监考任务
	ActionUpdated = "updated" // 任务变更
	ActionRemoved = "removed" // 任务被转派给他人
	ActionDeleted = "deleted" // 场次取消
)

// Notification 通知消息表 — 对应 notifications
// 排考事件的落地形式：调度事务提交后尽力写入，失败仅记日志
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	TeacherID      string    `gorm:"type:uuid;not null"                             json:"teacher_id"`
	Action         string    `gorm:"type:varchar(20);not null"                      json:"action"` // created | updated | removed | deleted
	Title          string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string    `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool      `gorm:"not null;default:false"                         json:"is_read"`
	SessionID      *string   `gorm:"type:uuid"                                      json:"session_id,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
