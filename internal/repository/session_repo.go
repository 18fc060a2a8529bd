package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/model"
	pkgerrors "github.com/Anesbeng/exam-planning-sub000/pkg/errors"
)

// SessionRepository 考试场次数据访问接口
//
// Create/Update 在单个事务内完成「锁定同教师/同考场当日场次 → 复查重叠 → 写入」，
// 使应用层的冲突预检与落库成为一个临界区；数据库的排它约束作为并发插入的最终兜底
type SessionRepository interface {
	Create(ctx context.Context, session *model.ExamSession) error
	Update(ctx context.Context, session *model.ExamSession) error
	GetByID(ctx context.Context, id string) (*model.ExamSession, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req *dto.SessionListRequest) ([]model.ExamSession, int64, error)
	ListByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) ([]model.ExamSession, error)
	ListByRoomAndDate(ctx context.Context, roomID string, date time.Time) ([]model.ExamSession, error)
	ListByTeacherFrom(ctx context.Context, teacherID string, from time.Time) ([]model.ExamSession, error)
	ListByRange(ctx context.Context, from, to time.Time, req *dto.SessionListRequest) ([]model.ExamSession, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

// isExclusionViolation 判断是否触发了时段排它约束（SQLSTATE 23P01）
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

// isForeignKeyViolation 判断是否触发了外键约束（SQLSTATE 23503）。
// 名册删除在被场次引用时会命中 exam_sessions 的 RESTRICT 外键
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// overlapScope 同日同教师或同考场、时间区间重叠的场次（半开区间判定）
func overlapScope(tx *gorm.DB, s *model.ExamSession, excludeID string) *gorm.DB {
	q := tx.Model(&model.ExamSession{}).
		Where("date = ?", s.Date).
		Where("teacher_id = ? OR room_id = ?", s.TeacherID, s.RoomID).
		Where("start_time < ? AND ? < end_time", s.EndTime, s.StartTime)
	if excludeID != "" {
		q = q.Where("session_id != ?", excludeID)
	}
	return q
}

func (r *sessionRepo) Create(ctx context.Context, session *model.ExamSession) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var colliding []model.ExamSession
		if err := overlapScope(tx, session, "").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Find(&colliding).Error; err != nil {
			return err
		}
		if len(colliding) > 0 {
			return pkgerrors.ErrBookingConflict
		}
		return tx.Create(session).Error
	})
	if isExclusionViolation(err) {
		return pkgerrors.ErrBookingConflict
	}
	return err
}

func (r *sessionRepo) Update(ctx context.Context, session *model.ExamSession) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var colliding []model.ExamSession
		if err := overlapScope(tx, session, session.SessionID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Find(&colliding).Error; err != nil {
			return err
		}
		if len(colliding) > 0 {
			return pkgerrors.ErrBookingConflict
		}

		oldVersion := session.Version
		result := tx.Model(session).
			Where("session_id = ? AND version = ?", session.SessionID, oldVersion).
			Updates(map[string]interface{}{
				"kind":        session.Kind,
				"module_name": session.ModuleName,
				"teacher_id":  session.TeacherID,
				"room_id":     session.RoomID,
				"specialty":   session.Specialty,
				"level":       session.Level,
				"group_name":  session.GroupName,
				"semester":    session.Semester,
				"date":        session.Date,
				"start_time":  session.StartTime,
				"end_time":    session.EndTime,
				"updated_by":  session.UpdatedBy,
				"version":     oldVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}
		session.Version = oldVersion + 1
		return nil
	})
	if isExclusionViolation(err) {
		return pkgerrors.ErrBookingConflict
	}
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Room").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Delete(&model.ExamSession{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sessionRepo) List(ctx context.Context, req *dto.SessionListRequest) ([]model.ExamSession, int64, error) {
	var sessions []model.ExamSession
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ExamSession{})
	db = applySessionFilters(db, req)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Teacher").Preload("Room").
		Offset(req.GetOffset()).Limit(req.GetPageSize()).
		Order("date ASC, start_time ASC").
		Find(&sessions).Error
	return sessions, total, err
}

func applySessionFilters(db *gorm.DB, req *dto.SessionListRequest) *gorm.DB {
	if req.Specialty != "" {
		db = db.Where("specialty = ?", req.Specialty)
	}
	if req.Level != "" {
		db = db.Where("level = ?", req.Level)
	}
	if req.GroupName != "" {
		db = db.Where("group_name = ?", req.GroupName)
	}
	if req.Semester != "" {
		db = db.Where("semester = ?", req.Semester)
	}
	if req.Date != "" {
		db = db.Where("date = ?", req.Date)
	}
	return db
}

func (r *sessionRepo) ListByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.db.WithContext(ctx).
		Preload("Teacher").Preload("Room").
		Where("teacher_id = ? AND date = ?", teacherID, date).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByRoomAndDate(ctx context.Context, roomID string, date time.Time) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.db.WithContext(ctx).
		Preload("Teacher").Preload("Room").
		Where("room_id = ? AND date = ?", roomID, date).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByTeacherFrom(ctx context.Context, teacherID string, from time.Time) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.db.WithContext(ctx).
		Preload("Teacher").Preload("Room").
		Where("teacher_id = ? AND date >= ?", teacherID, from).
		Order("date ASC, start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByRange(ctx context.Context, from, to time.Time, req *dto.SessionListRequest) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	db := r.db.WithContext(ctx).Model(&model.ExamSession{}).
		Where("date >= ? AND date <= ?", from, to)
	db = applySessionFilters(db, req)
	err := db.Preload("Teacher").Preload("Room").
		Order("date ASC, start_time ASC").
		Find(&sessions).Error
	return sessions, err
}
