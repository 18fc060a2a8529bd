package model

// Teacher 教师名册表 — 对应 teachers
// 排考引擎将其视为只读参考数据；matricule 是对外稳定工号
type Teacher struct {
	TeacherID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Matricule string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"matricule"`
	Email     string `gorm:"type:varchar(255);not null"                     json:"email"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }
