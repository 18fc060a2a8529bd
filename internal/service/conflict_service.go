package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Anesbeng/exam-planning-sub000/internal/model"
	"github.com/Anesbeng/exam-planning-sub000/internal/repository"
)

// overlaps 判断同一自然日内两个半开时间区间 [aStart,aEnd) 与 [bStart,bEnd) 是否重叠
// 时间为零填充的 "HH:MM" 字符串，字典序即时间序
// 首尾相接（aEnd == bStart）不算重叠；跨日比较须在调用前以日期相等排除
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// ConflictResult 一次冲突判定的结果（瞬态值，不落库）
// Sessions 携带全部碰撞场次，供前端展示与日志诊断
type ConflictResult struct {
	HasConflict bool
	Sessions    []model.ExamSession
}

// ConflictError 排考冲突业务拒绝
// 属于预期业务结果而非故障：调用方依 Dimension 渲染具体提示
type ConflictError struct {
	Dimension string // "teacher" | "room"
	Sessions  []model.ExamSession
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("排考冲突: %s 维度存在 %d 个重叠场次", e.Dimension, len(e.Sessions))
}

// ConflictService 冲突判定接口
//
// 两个操作都是纯读：写入路径在事务内还会再复检一次，
// 这里的判定只负责在提交前给出精确、友好的冲突信息
type ConflictService interface {
	// TeacherConflict 判定教师在指定日期时段是否已有场次；excludeSessionID 用于更新时排除自身
	TeacherConflict(ctx context.Context, teacherID string, date time.Time, start, end, excludeSessionID string) (*ConflictResult, error)
	// RoomConflict 判定考场在指定日期时段是否已被占用
	RoomConflict(ctx context.Context, roomID string, date time.Time, start, end, excludeSessionID string) (*ConflictResult, error)
}

type conflictService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewConflictService 创建 ConflictService 实例
func NewConflictService(repo *repository.Repository, logger *zap.Logger) ConflictService {
	return &conflictService{repo: repo, logger: logger}
}

func (s *conflictService) TeacherConflict(ctx context.Context, teacherID string, date time.Time, start, end, excludeSessionID string) (*ConflictResult, error) {
	sessions, err := s.repo.Session.ListByTeacherAndDate(ctx, teacherID, date)
	if err != nil {
		s.logger.Error("查询教师当日场次失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}
	return collectConflicts(sessions, start, end, excludeSessionID), nil
}

func (s *conflictService) RoomConflict(ctx context.Context, roomID string, date time.Time, start, end, excludeSessionID string) (*ConflictResult, error) {
	sessions, err := s.repo.Session.ListByRoomAndDate(ctx, roomID, date)
	if err != nil {
		s.logger.Error("查询考场当日场次失败", zap.String("room_id", roomID), zap.Error(err))
		return nil, err
	}
	return collectConflicts(sessions, start, end, excludeSessionID), nil
}

// collectConflicts 收集全部重叠场次，而非发现第一个即返回
func collectConflicts(sessions []model.ExamSession, start, end, excludeSessionID string) *ConflictResult {
	result := &ConflictResult{}
	for _, sess := range sessions {
		if excludeSessionID != "" && sess.SessionID == excludeSessionID {
			continue
		}
		if overlaps(start, end, sess.StartTime, sess.EndTime) {
			result.Sessions = append(result.Sessions, sess)
		}
	}
	result.HasConflict = len(result.Sessions) > 0
	return result
}
