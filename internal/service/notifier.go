package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Anesbeng/exam-planning-sub000/internal/model"
	"github.com/Anesbeng/exam-planning-sub000/internal/repository"
)

// Notifier 排考事件接收方
//
// 调度写入成功后尽力投递：投递失败只记日志，绝不回滚排考结果，
// 也不向调度调用方暴露
type Notifier interface {
	Notify(teacherID string, session *model.ExamSession, action string)
}

const notifyTimeout = 5 * time.Second

type notificationNotifier struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotifier 创建默认 Notifier：事件落为 notifications 表记录
func NewNotifier(repo *repository.Repository, logger *zap.Logger) Notifier {
	return &notificationNotifier{repo: repo, logger: logger}
}

func (n *notificationNotifier) Notify(teacherID string, session *model.ExamSession, action string) {
	// 异步写入，与调度事务完全解耦
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		sessionID := session.SessionID
		notification := &model.Notification{
			TeacherID: teacherID,
			Action:    action,
			Title:     titleFor(action),
			Content:   contentFor(session, action),
			SessionID: &sessionID,
		}

		if err := n.repo.Notification.Create(ctx, notification); err != nil {
			n.logger.Warn("通知写入失败",
				zap.String("teacher_id", teacherID),
				zap.String("action", action),
				zap.String("session_id", session.SessionID),
				zap.Error(err),
			)
		}
	}()
}

func titleFor(action string) string {
	switch action {
	case model.ActionCreated:
		return "新监考任务"
	case model.ActionUpdated:
		return "监考任务变更"
	case model.ActionRemoved:
		return "监考任务已转派"
	default:
		return "考试场次取消"
	}
}

func contentFor(session *model.ExamSession, action string) string {
	roomName := session.RoomID
	if session.Room != nil {
		roomName = session.Room.Name
	}
	base := fmt.Sprintf("%s %s-%s 《%s》 考场 %s",
		session.DateKey(), session.StartTime, session.EndTime, session.ModuleName, roomName)

	switch action {
	case model.ActionCreated:
		return "您有一场新的监考安排：" + base
	case model.ActionUpdated:
		return "您的监考安排已更新：" + base
	case model.ActionRemoved:
		return "以下监考任务已转派给其他教师：" + base
	default:
		return "以下考试场次已取消：" + base
	}
}
