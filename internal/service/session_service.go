package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/model"
	"github.com/Anesbeng/exam-planning-sub000/internal/repository"
	pkgerrors "github.com/Anesbeng/exam-planning-sub000/pkg/errors"
)

// ── 场次模块业务错误 ──

var (
	ErrSessionNotFound = errors.New("考试场次不存在")
	ErrTeacherNotFound = errors.New("教师不存在")
	ErrRoomNotFound    = errors.New("考场不存在")
)

// SessionService 排考调度接口
//
// 场次状态机：提议 → 冲突检查 → {拒绝 | 已落库}；
// 已落库 → 更新（排除自身复检） → {拒绝 | 已落库}；已落库 → 删除。
// 冲突拒绝以 *ConflictError 返回，教师维度先于考场维度检查，
// 两者同时冲突时调用方首先看到教师冲突
type SessionService interface {
	Create(ctx context.Context, input *dto.SessionInput, callerID string) (*dto.SessionResponse, error)
	Update(ctx context.Context, id string, input *dto.SessionInput, callerID string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// BulkDelete 逐条独立删除：单条失败不影响其余，返回逐条结果
	BulkDelete(ctx context.Context, ids []string, callerID string) (*dto.BulkDeleteResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SessionResponse, error)
	List(ctx context.Context, req *dto.SessionListRequest) ([]dto.SessionResponse, int64, error)
}

type sessionService struct {
	repo     *repository.Repository
	conflict ConflictService
	assign   AutoAssignService
	notifier Notifier
	logger   *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(
	repo *repository.Repository,
	conflict ConflictService,
	assign AutoAssignService,
	notifier Notifier,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		repo:     repo,
		conflict: conflict,
		assign:   assign,
		notifier: notifier,
		logger:   logger,
	}
}

// ════════════════════════════════════════════════════════════
// Create — 创建场次
// ════════════════════════════════════════════════════════════

func (s *sessionService) Create(ctx context.Context, input *dto.SessionInput, callerID string) (*dto.SessionResponse, error) {
	date, err := parseSlot(input.Date, input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}

	// 未指定监考教师时按名册顺序自动指派
	teacherID := input.TeacherID
	if teacherID == "" {
		chosen, err := s.assign.Assign(ctx, &dto.AutoAssignRequest{
			Date:      input.Date,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
		})
		if err != nil {
			return nil, err
		}
		teacherID = chosen.ID
	}

	if err := s.checkReferences(ctx, teacherID, input.RoomID); err != nil {
		return nil, err
	}

	// 教师维度先检查：双冲突时教师冲突优先呈现
	if err := s.checkConflicts(ctx, teacherID, input.RoomID, date, input.StartTime, input.EndTime, ""); err != nil {
		return nil, err
	}

	session := &model.ExamSession{
		Kind:       input.Kind,
		ModuleName: input.ModuleName,
		TeacherID:  teacherID,
		RoomID:     input.RoomID,
		Specialty:  input.Specialty,
		Level:      input.Level,
		GroupName:  input.GroupName,
		Semester:   input.Semester,
		Date:       date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
	}
	session.CreatedBy = &callerID
	session.UpdatedBy = &callerID

	if err := s.repo.Session.Create(ctx, session); err != nil {
		if errors.Is(err, pkgerrors.ErrBookingConflict) {
			// 预检与写入之间被并发占用：重跑判定以给出具体碰撞场次
			return nil, s.recheckRejection(ctx, teacherID, input.RoomID, date, input.StartTime, input.EndTime, "")
		}
		s.logger.Error("创建考试场次失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Session.GetByID(ctx, session.SessionID)
	if err != nil {
		s.logger.Error("回查新建场次失败", zap.String("session_id", session.SessionID), zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(created.TeacherID, created, model.ActionCreated)

	resp := toSessionResponse(created)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// Update — 更新场次（排除自身复检；换教师时双向通知）
// ════════════════════════════════════════════════════════════

func (s *sessionService) Update(ctx context.Context, id string, input *dto.SessionInput, callerID string) (*dto.SessionResponse, error) {
	existing, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询考试场次失败", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}

	date, err := parseSlot(input.Date, input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}

	teacherID := input.TeacherID
	if teacherID == "" {
		teacherID = existing.TeacherID
	}

	if err := s.checkReferences(ctx, teacherID, input.RoomID); err != nil {
		return nil, err
	}

	if err := s.checkConflicts(ctx, teacherID, input.RoomID, date, input.StartTime, input.EndTime, id); err != nil {
		return nil, err
	}

	oldTeacherID := existing.TeacherID

	existing.Kind = input.Kind
	existing.ModuleName = input.ModuleName
	existing.TeacherID = teacherID
	existing.RoomID = input.RoomID
	existing.Specialty = input.Specialty
	existing.Level = input.Level
	existing.GroupName = input.GroupName
	existing.Semester = input.Semester
	existing.Date = date
	existing.StartTime = input.StartTime
	existing.EndTime = input.EndTime
	existing.UpdatedBy = &callerID

	if err := s.repo.Session.Update(ctx, existing); err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrBookingConflict):
			return nil, s.recheckRejection(ctx, teacherID, input.RoomID, date, input.StartTime, input.EndTime, id)
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			return nil, err
		}
		s.logger.Error("更新考试场次失败", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("回查更新场次失败", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}

	// 换教师：原教师收到转派通知，新教师收到新任务通知
	if oldTeacherID != updated.TeacherID {
		s.notifier.Notify(oldTeacherID, updated, model.ActionRemoved)
		s.notifier.Notify(updated.TeacherID, updated, model.ActionCreated)
	} else {
		s.notifier.Notify(updated.TeacherID, updated, model.ActionUpdated)
	}

	resp := toSessionResponse(updated)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// Delete — 删除场次（无需冲突检查，但要通知教师）
// ════════════════════════════════════════════════════════════

func (s *sessionService) Delete(ctx context.Context, id string, callerID string) error {
	existing, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("查询考试场次失败", zap.String("session_id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Session.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("删除考试场次失败", zap.String("session_id", id), zap.Error(err))
		return err
	}

	s.notifier.Notify(existing.TeacherID, existing, model.ActionDeleted)
	return nil
}

// ════════════════════════════════════════════════════════════
// BulkDelete — 批量删除（尽力而为，非原子）
// ════════════════════════════════════════════════════════════

func (s *sessionService) BulkDelete(ctx context.Context, ids []string, callerID string) (*dto.BulkDeleteResponse, error) {
	resp := &dto.BulkDeleteResponse{
		Results: make([]dto.BulkDeleteResult, 0, len(ids)),
	}

	for _, id := range ids {
		err := s.Delete(ctx, id, callerID)
		switch {
		case err == nil:
			resp.Results = append(resp.Results, dto.BulkDeleteResult{ID: id, Status: "deleted"})
			resp.Deleted++
		case errors.Is(err, ErrSessionNotFound):
			resp.Results = append(resp.Results, dto.BulkDeleteResult{ID: id, Status: "not_found"})
		default:
			// 单条失败不回滚其余删除
			resp.Results = append(resp.Results, dto.BulkDeleteResult{ID: id, Status: "error"})
		}
	}

	return resp, nil
}

// ════════════════════════════════════════════════════════════
// GetByID / List — 读取
// ════════════════════════════════════════════════════════════

func (s *sessionService) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询考试场次失败", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) List(ctx context.Context, req *dto.SessionListRequest) ([]dto.SessionResponse, int64, error) {
	sessions, total, err := s.repo.Session.List(ctx, req)
	if err != nil {
		s.logger.Error("查询场次列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, toSessionResponse(&sessions[i]))
	}
	return result, total, nil
}

// ════════════════════════════════════════════════════════════
// 内部辅助方法
// ════════════════════════════════════════════════════════════

// checkReferences 校验教师与考场引用存在
func (s *sessionService) checkReferences(ctx context.Context, teacherID, roomID string) error {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return err
	}
	if _, err := s.repo.Room.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("查询考场失败", zap.String("room_id", roomID), zap.Error(err))
		return err
	}
	return nil
}

// checkConflicts 教师维度先于考场维度；冲突以 *ConflictError 返回
func (s *sessionService) checkConflicts(ctx context.Context, teacherID, roomID string, date time.Time, start, end, excludeSessionID string) error {
	teacherCheck, err := s.conflict.TeacherConflict(ctx, teacherID, date, start, end, excludeSessionID)
	if err != nil {
		return err
	}
	if teacherCheck.HasConflict {
		return &ConflictError{Dimension: "teacher", Sessions: teacherCheck.Sessions}
	}

	roomCheck, err := s.conflict.RoomConflict(ctx, roomID, date, start, end, excludeSessionID)
	if err != nil {
		return err
	}
	if roomCheck.HasConflict {
		return &ConflictError{Dimension: "room", Sessions: roomCheck.Sessions}
	}

	return nil
}

// recheckRejection 写入路径复检失败后重跑判定，尽量给出具体碰撞场次
func (s *sessionService) recheckRejection(ctx context.Context, teacherID, roomID string, date time.Time, start, end, excludeSessionID string) error {
	if err := s.checkConflicts(ctx, teacherID, roomID, date, start, end, excludeSessionID); err != nil {
		return err
	}
	// 碰撞场次已不可见（例如对方又被删除），按通用冲突返回
	return pkgerrors.ErrBookingConflict
}

// toSessionResponse 构建场次完整响应
func toSessionResponse(session *model.ExamSession) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:         session.SessionID,
		Kind:       session.Kind,
		ModuleName: session.ModuleName,
		Specialty:  session.Specialty,
		Level:      session.Level,
		GroupName:  session.GroupName,
		Semester:   session.Semester,
		Date:       session.DateKey(),
		StartTime:  session.StartTime,
		EndTime:    session.EndTime,
		CreatedAt:  session.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  session.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if session.Teacher != nil {
		resp.Teacher = &dto.TeacherResponse{
			ID:        session.Teacher.TeacherID,
			Name:      session.Teacher.Name,
			Matricule: session.Teacher.Matricule,
			Email:     session.Teacher.Email,
			IsActive:  session.Teacher.IsActive,
		}
	}
	if session.Room != nil {
		resp.Room = &dto.RoomResponse{
			ID:       session.Room.RoomID,
			Name:     session.Room.Name,
			Capacity: session.Room.Capacity,
			Location: session.Room.Location,
			IsActive: session.Room.IsActive,
		}
	}
	return resp
}

// ToPayload 将冲突拒绝转为 409 响应负载
func (e *ConflictError) ToPayload() dto.ConflictPayload {
	payload := dto.ConflictPayload{
		Dimension: e.Dimension,
		Conflicts: make([]dto.SessionBrief, 0, len(e.Sessions)),
	}
	for i := range e.Sessions {
		sess := &e.Sessions[i]
		brief := dto.SessionBrief{
			ID:         sess.SessionID,
			ModuleName: sess.ModuleName,
			Date:       sess.DateKey(),
			StartTime:  sess.StartTime,
			EndTime:    sess.EndTime,
		}
		if sess.Teacher != nil {
			brief.TeacherName = sess.Teacher.Name
		}
		if sess.Room != nil {
			brief.RoomName = sess.Room.Name
		}
		payload.Conflicts = append(payload.Conflicts, brief)
	}
	return payload
}
