package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Anesbeng/exam-planning-sub000/config"
	"github.com/Anesbeng/exam-planning-sub000/internal/api/handler"
	"github.com/Anesbeng/exam-planning-sub000/internal/api/middleware"
	"github.com/Anesbeng/exam-planning-sub000/pkg/jwt"
	"github.com/Anesbeng/exam-planning-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20)) // 1 MiB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录/刷新限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 日历订阅：供日历客户端轮询，走令牌以外的公开只读通道
		v1.GET("/export/calendar/:teacher_id", h.Export.TeacherCalendar)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 教师名册模块
			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", h.Teacher.ListTeachers)
				teachers.GET("/:id", h.Teacher.GetTeacher)
				teachers.POST("", middleware.RoleAuth("admin"), h.Teacher.CreateTeacher)
				teachers.PUT("/:id", middleware.RoleAuth("admin"), h.Teacher.UpdateTeacher)
				teachers.DELETE("/:id", middleware.RoleAuth("admin"), h.Teacher.DeleteTeacher)
			}

			// 考场名册模块
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.ListRooms)
				rooms.GET("/:id", h.Room.GetRoom)
				rooms.POST("", middleware.RoleAuth("admin"), h.Room.CreateRoom)
				rooms.PUT("/:id", middleware.RoleAuth("admin"), h.Room.UpdateRoom)
				rooms.DELETE("/:id", middleware.RoleAuth("admin"), h.Room.DeleteRoom)
			}

			// 排考场次模块
			sessions := authorized.Group("/sessions")
			{
				sessions.GET("", h.Session.ListSessions)
				sessions.GET("/:id", h.Session.GetSession)
				sessions.POST("", middleware.RoleAuth("admin"), h.Session.CreateSession)
				sessions.PUT("/:id", middleware.RoleAuth("admin"), h.Session.UpdateSession)
				sessions.DELETE("/:id", middleware.RoleAuth("admin"), h.Session.DeleteSession)
				sessions.POST("/bulk-delete", middleware.RoleAuth("admin"), h.Session.BulkDeleteSessions)
			}

			// 可用性查询与自动指派模块
			availability := authorized.Group("/availability")
			{
				availability.GET("/rooms", h.Availability.AvailableRooms)
				availability.GET("/teachers", h.Availability.AvailableTeachers)
				availability.POST("/assign", middleware.RoleAuth("admin"), h.Availability.AutoAssign)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListNotifications)
				notifications.PUT("/:id/read", h.Notification.MarkNotificationRead)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/timetable", h.Export.ExportTimetable)
			}
		}
	}

	return r
}
