package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Teacher      TeacherRepository
	Room         RoomRepository
	Session      SessionRepository
	Notification NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Teacher:      NewTeacherRepo(db),
		Room:         NewRoomRepo(db),
		Session:      NewSessionRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
