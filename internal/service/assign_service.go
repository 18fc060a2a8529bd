package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/repository"
)

// ErrNoTeacherAvailable 自动指派未找到空闲教师
// 这是可预期的业务结果，调用方据此与传输/存储故障区分
var ErrNoTeacherAvailable = errors.New("该时段没有空闲教师")

// AutoAssignService 自动指派监考接口
//
// 策略：按名册固定顺序（姓名升序）遍历，返回第一个无冲突的教师。
// 有意不做负载均衡——这是明确的简单性取舍，不是疏漏
type AutoAssignService interface {
	Assign(ctx context.Context, req *dto.AutoAssignRequest) (*dto.TeacherResponse, error)
}

type autoAssignService struct {
	repo     *repository.Repository
	conflict ConflictService
	logger   *zap.Logger
}

// NewAutoAssignService 创建 AutoAssignService 实例
func NewAutoAssignService(repo *repository.Repository, conflict ConflictService, logger *zap.Logger) AutoAssignService {
	return &autoAssignService{repo: repo, conflict: conflict, logger: logger}
}

func (s *autoAssignService) Assign(ctx context.Context, req *dto.AutoAssignRequest) (*dto.TeacherResponse, error) {
	date, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	teachers, err := s.repo.Teacher.List(ctx, false)
	if err != nil {
		s.logger.Error("查询教师名册失败", zap.Error(err))
		return nil, err
	}

	for i := range teachers {
		if req.ExcludeTeacherID != "" && teachers[i].TeacherID == req.ExcludeTeacherID {
			continue
		}
		check, err := s.conflict.TeacherConflict(ctx, teachers[i].TeacherID, date, req.StartTime, req.EndTime, "")
		if err != nil {
			return nil, err
		}
		if check.HasConflict {
			continue
		}
		// 名册顺序下第一个空闲者即中选
		return &dto.TeacherResponse{
			ID:        teachers[i].TeacherID,
			Name:      teachers[i].Name,
			Matricule: teachers[i].Matricule,
			Email:     teachers[i].Email,
			IsActive:  teachers[i].IsActive,
		}, nil
	}

	return nil, ErrNoTeacherAvailable
}
