package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/repository"
)

// ── 可用性模块业务错误 ──

var (
	ErrInvalidTimeRange = errors.New("开始时间必须早于结束时间")
	ErrInvalidDate      = errors.New("日期格式无效")
)

// AvailabilityService 可用性查询接口
//
// 仅用于提交前的 UI 预过滤（咨询性质）：
// 查询时刻空闲的教师/考场在真正写入前仍可能被他人占用，
// 最终裁决始终由写入路径的冲突检查完成
type AvailabilityService interface {
	// AvailableRooms 返回指定时段无占用的考场，保持名册顺序（名称升序）
	AvailableRooms(ctx context.Context, req *dto.AvailabilityRequest) ([]dto.RoomResponse, error)
	// AvailableTeachers 返回指定时段空闲的教师，保持名册顺序；可排除指定教师
	AvailableTeachers(ctx context.Context, req *dto.TeacherAvailabilityRequest) ([]dto.TeacherResponse, error)
}

type availabilityService struct {
	repo     *repository.Repository
	conflict ConflictService
	logger   *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, conflict ConflictService, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, conflict: conflict, logger: logger}
}

// parseSlot 解析并校验查询时段
func parseSlot(date, start, end string) (time.Time, error) {
	if start >= end {
		return time.Time{}, ErrInvalidTimeRange
	}
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func (s *availabilityService) AvailableRooms(ctx context.Context, req *dto.AvailabilityRequest) ([]dto.RoomResponse, error) {
	date, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.Room.List(ctx, false)
	if err != nil {
		s.logger.Error("查询考场名册失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		check, err := s.conflict.RoomConflict(ctx, rooms[i].RoomID, date, req.StartTime, req.EndTime, req.ExcludeSessionID)
		if err != nil {
			return nil, err
		}
		if check.HasConflict {
			continue
		}
		result = append(result, dto.RoomResponse{
			ID:       rooms[i].RoomID,
			Name:     rooms[i].Name,
			Capacity: rooms[i].Capacity,
			Location: rooms[i].Location,
			IsActive: rooms[i].IsActive,
		})
	}
	return result, nil
}

func (s *availabilityService) AvailableTeachers(ctx context.Context, req *dto.TeacherAvailabilityRequest) ([]dto.TeacherResponse, error) {
	date, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	teachers, err := s.repo.Teacher.List(ctx, false)
	if err != nil {
		s.logger.Error("查询教师名册失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		if req.ExcludeTeacherID != "" && teachers[i].TeacherID == req.ExcludeTeacherID {
			continue
		}
		check, err := s.conflict.TeacherConflict(ctx, teachers[i].TeacherID, date, req.StartTime, req.EndTime, req.ExcludeSessionID)
		if err != nil {
			return nil, err
		}
		if check.HasConflict {
			continue
		}
		result = append(result, dto.TeacherResponse{
			ID:        teachers[i].TeacherID,
			Name:      teachers[i].Name,
			Matricule: teachers[i].Matricule,
			Email:     teachers[i].Email,
			IsActive:  teachers[i].IsActive,
		})
	}
	return result, nil
}
