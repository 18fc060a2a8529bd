package model

// Room 考场名册表 — 对应 rooms
type Room struct {
	RoomID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Capacity int    `gorm:"not null;default:0"                             json:"capacity"`
	Location string `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }
