package handler

import "github.com/Anesbeng/exam-planning-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Teacher      *TeacherHandler
	Room         *RoomHandler
	Session      *SessionHandler
	Availability *AvailabilityHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Teacher:      NewTeacherHandler(svc.Teacher),
		Room:         NewRoomHandler(svc.Room),
		Session:      NewSessionHandler(svc.Session),
		Availability: NewAvailabilityHandler(svc.Availability, svc.AutoAssign),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export, svc.Calendar),
	}
}
