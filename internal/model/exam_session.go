package model

import "time"

// 考试类型
const (
	KindExam       = "exam"       // 期末考试
	KindCC         = "cc"         // 平时考核 (contrôle continu)
	KindRattrapage = "rattrapage" // 补考
)

// ExamSession 考试场次表 — 对应 exam_sessions
// 一个场次绑定：科目 + 监考教师 + 考场 + 日期时段，并限定到
// 专业/年级/班组/学期维度（仅用于圈定考生范围，不参与冲突判定）
type ExamSession struct {
	SessionID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	Kind       string    `gorm:"type:varchar(20);not null"                      json:"kind"` // exam | cc | rattrapage
	ModuleName string    `gorm:"type:varchar(200);not null"                     json:"module_name"`
	TeacherID  string    `gorm:"type:uuid;not null"                             json:"teacher_id"`
	RoomID     string    `gorm:"type:uuid;not null"                             json:"room_id"`
	Specialty  string    `gorm:"type:varchar(100);not null"                     json:"specialty"`
	Level      string    `gorm:"type:varchar(50);not null"                      json:"level"`
	GroupName  string    `gorm:"type:varchar(50);not null"                      json:"group_name"`
	Semester   string    `gorm:"type:varchar(20);not null"                      json:"semester"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	StartTime  string    `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:MM"
	EndTime    string    `gorm:"type:varchar(5);not null"                       json:"end_time"`   // "HH:MM"，恒有 StartTime < EndTime
	VersionedModel

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
	Room    *Room    `gorm:"foreignKey:RoomID;references:RoomID"       json:"room,omitempty"`
}

// TableName 指定表名
func (ExamSession) TableName() string { return "exam_sessions" }

// DateKey 返回 "YYYY-MM-DD" 形式的日期键（冲突判定按自然日分组）
func (s *ExamSession) DateKey() string { return s.Date.Format("2006-01-02") }
