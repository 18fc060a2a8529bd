package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anesbeng/exam-planning-sub000/config"
	"github.com/Anesbeng/exam-planning-sub000/internal/model"
	"github.com/Anesbeng/exam-planning-sub000/internal/repository"
)

// CalendarService 日历订阅接口
//
// 为每位教师生成可被日历客户端订阅的 iCalendar (RFC 5545) 信息流，
// 内容为该教师从今天起的全部监考场次
type CalendarService interface {
	// TeacherFeed 生成教师监考日历，返回序列化后的 ICS 文本
	TeacherFeed(ctx context.Context, teacherID string) (string, error)
}

type calendarService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CalendarService {
	loc, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		logger.Warn("时区加载失败，回退 UTC", zap.String("timezone", cfg.Database.Timezone))
		loc = time.UTC
	}
	return &calendarService{cfg: cfg, repo: repo, logger: logger, loc: loc}
}

func (s *calendarService) TeacherFeed(ctx context.Context, teacherID string) (string, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", teacherID), zap.Error(err))
		return "", err
	}

	today := startOfDay(time.Now(), s.loc)
	sessions, err := s.repo.Session.ListByTeacherFrom(ctx, teacherID, today)
	if err != nil {
		s.logger.Error("查询教师场次失败", zap.String("id", teacherID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	now := time.Now().In(s.loc)
	for i := range sessions {
		sess := &sessions[i]
		start, end, err := s.sessionTimes(sess)
		if err != nil {
			// 数据损坏的场次跳过，不让单条记录拖垮整个订阅流
			s.logger.Warn("场次时间解析失败，已跳过",
				zap.String("session_id", sess.SessionID), zap.Error(err))
			continue
		}

		event := cal.AddEvent(sess.SessionID + "@exam-planning")
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("监考：%s (%s)", sess.ModuleName, kindLabel(sess.Kind)))
		if sess.Room != nil {
			event.SetLocation(sess.Room.Name)
		}
		event.SetDescription(fmt.Sprintf("%s %s %s组 · 监考教师 %s",
			sess.Specialty, sess.Level, sess.GroupName, teacher.Name))
	}

	return cal.Serialize(), nil
}

// startOfDay 返回给定时刻在目标时区的当日零点。
// Truncate 按 UTC 纪元切日，非 UTC 时区下会偏移一个时区差，不能用在这里
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// sessionTimes 将「日期 + HH:MM 字符串」组合为带时区的起止时刻
func (s *calendarService) sessionTimes(sess *model.ExamSession) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", sess.DateKey()+" "+sess.StartTime, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", sess.DateKey()+" "+sess.EndTime, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
