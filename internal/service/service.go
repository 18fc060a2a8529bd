package service

import (
	"go.uber.org/zap"

	"github.com/Anesbeng/exam-planning-sub000/config"
	"github.com/Anesbeng/exam-planning-sub000/internal/repository"
	"github.com/Anesbeng/exam-planning-sub000/pkg/jwt"
	"github.com/Anesbeng/exam-planning-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Teacher      TeacherService
	Room         RoomService
	Conflict     ConflictService
	Availability AvailabilityService
	AutoAssign   AutoAssignService
	Session      SessionService
	Notification NotificationService
	Export       ExportService
	Calendar     CalendarService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil（Redis 不可用时相关能力降级）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	conflict := NewConflictService(repo, logger)
	assign := NewAutoAssignService(repo, conflict, logger)
	notifier := NewNotifier(repo, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Teacher:      NewTeacherService(repo, logger),
		Room:         NewRoomService(repo, logger),
		Conflict:     conflict,
		Availability: NewAvailabilityService(repo, conflict, logger),
		AutoAssign:   assign,
		Session:      NewSessionService(repo, conflict, assign, notifier, logger),
		Notification: NewNotificationService(repo, logger),
		Export:       NewExportService(repo, logger),
		Calendar:     NewCalendarService(cfg, repo, logger),
	}
}
