package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/model"
	"github.com/Anesbeng/exam-planning-sub000/internal/repository"
	pkgerrors "github.com/Anesbeng/exam-planning-sub000/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if u, ok := m.users[id]; ok {
		u.PasswordHash = passwordHash
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers  map[string]*model.Teacher
	sessions  *mockSessionRepo
	idCounter int
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		m.idCounter++
		teacher.TeacherID = fmt.Sprintf("t-%d", m.idCounter)
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByMatricule(_ context.Context, matricule string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.Matricule == matricule {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// List 模拟名册固定顺序：姓名升序，同名按 ID 升序
func (m *mockTeacherRepo) List(_ context.Context, includeInactive bool) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		if !includeInactive && !t.IsActive {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].TeacherID < result[j].TeacherID
	})
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

// Delete 模拟 exam_sessions 的 RESTRICT 外键：被场次引用时拒绝删除
func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.teachers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	if m.sessions != nil {
		for _, s := range m.sessions.sessions {
			if s.TeacherID == id {
				return pkgerrors.ErrRowReferenced
			}
		}
	}
	delete(m.teachers, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms     map[string]*model.Room
	sessions  *mockSessionRepo
	idCounter int
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		m.idCounter++
		room.RoomID = fmt.Sprintf("r-%d", m.idCounter)
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context, includeInactive bool) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if !includeInactive && !r.IsActive {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].RoomID < result[j].RoomID
	})
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.RoomID] = room
	return nil
}

// Delete 模拟 exam_sessions 的 RESTRICT 外键：被场次引用时拒绝删除
func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.rooms[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	if m.sessions != nil {
		for _, s := range m.sessions.sessions {
			if s.RoomID == id {
				return pkgerrors.ErrRowReferenced
			}
		}
	}
	delete(m.rooms, id)
	return nil
}

// ── Mock SessionRepository ──
//
// 与真实实现保持相同的语义：写入路径做重叠复检并返回 ErrBookingConflict，
// 更新带版本号乐观锁，读取路径按开始时间排序并填充关联

type mockSessionRepo struct {
	sessions  map[string]*model.ExamSession
	teachers  *mockTeacherRepo
	rooms     *mockRoomRepo
	idCounter int
}

func newMockSessionRepo(teachers *mockTeacherRepo, rooms *mockRoomRepo) *mockSessionRepo {
	return &mockSessionRepo{
		sessions: make(map[string]*model.ExamSession),
		teachers: teachers,
		rooms:    rooms,
	}
}

func (m *mockSessionRepo) hasCollision(s *model.ExamSession, excludeID string) bool {
	for _, other := range m.sessions {
		if other.SessionID == excludeID {
			continue
		}
		if other.DateKey() != s.DateKey() {
			continue
		}
		if other.TeacherID != s.TeacherID && other.RoomID != s.RoomID {
			continue
		}
		if s.StartTime < other.EndTime && other.StartTime < s.EndTime {
			return true
		}
	}
	return false
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.ExamSession) error {
	if m.hasCollision(session, "") {
		return pkgerrors.ErrBookingConflict
	}
	if session.SessionID == "" {
		m.idCounter++
		session.SessionID = fmt.Sprintf("sess-%d", m.idCounter)
	}
	if session.Version == 0 {
		session.Version = 1
	}
	cp := *session
	m.sessions[cp.SessionID] = &cp
	return nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.ExamSession) error {
	stored, ok := m.sessions[session.SessionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if m.hasCollision(session, session.SessionID) {
		return pkgerrors.ErrBookingConflict
	}
	if stored.Version != session.Version {
		return pkgerrors.ErrOptimisticLock
	}
	session.Version++
	cp := *session
	m.sessions[cp.SessionID] = &cp
	return nil
}

// preload 模拟 GORM Preload：填充教师与考场关联
func (m *mockSessionRepo) preload(s model.ExamSession) model.ExamSession {
	if t, ok := m.teachers.teachers[s.TeacherID]; ok {
		s.Teacher = t
	}
	if r, ok := m.rooms.rooms[s.RoomID]; ok {
		s.Room = r
	}
	return s
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.ExamSession, error) {
	if s, ok := m.sessions[id]; ok {
		loaded := m.preload(*s)
		return &loaded, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.sessions, id)
	return nil
}

func sortByDateAndStart(sessions []model.ExamSession) {
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})
}

func (m *mockSessionRepo) List(_ context.Context, req *dto.SessionListRequest) ([]model.ExamSession, int64, error) {
	var result []model.ExamSession
	for _, s := range m.sessions {
		if req.Specialty != "" && s.Specialty != req.Specialty {
			continue
		}
		if req.Level != "" && s.Level != req.Level {
			continue
		}
		if req.GroupName != "" && s.GroupName != req.GroupName {
			continue
		}
		if req.Semester != "" && s.Semester != req.Semester {
			continue
		}
		if req.Date != "" && s.DateKey() != req.Date {
			continue
		}
		result = append(result, m.preload(*s))
	}
	sortByDateAndStart(result)

	total := int64(len(result))
	offset := req.GetOffset()
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + req.GetPageSize()
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockSessionRepo) ListByTeacherAndDate(_ context.Context, teacherID string, date time.Time) ([]model.ExamSession, error) {
	dateKey := date.Format("2006-01-02")
	var result []model.ExamSession
	for _, s := range m.sessions {
		if s.TeacherID == teacherID && s.DateKey() == dateKey {
			result = append(result, m.preload(*s))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *mockSessionRepo) ListByRoomAndDate(_ context.Context, roomID string, date time.Time) ([]model.ExamSession, error) {
	dateKey := date.Format("2006-01-02")
	var result []model.ExamSession
	for _, s := range m.sessions {
		if s.RoomID == roomID && s.DateKey() == dateKey {
			result = append(result, m.preload(*s))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *mockSessionRepo) ListByTeacherFrom(_ context.Context, teacherID string, from time.Time) ([]model.ExamSession, error) {
	var result []model.ExamSession
	for _, s := range m.sessions {
		if s.TeacherID == teacherID && !s.Date.Before(from) {
			result = append(result, m.preload(*s))
		}
	}
	sortByDateAndStart(result)
	return result, nil
}

func (m *mockSessionRepo) ListByRange(_ context.Context, from, to time.Time, req *dto.SessionListRequest) ([]model.ExamSession, error) {
	var result []model.ExamSession
	for _, s := range m.sessions {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		if req.Specialty != "" && s.Specialty != req.Specialty {
			continue
		}
		if req.Level != "" && s.Level != req.Level {
			continue
		}
		if req.GroupName != "" && s.GroupName != req.GroupName {
			continue
		}
		if req.Semester != "" && s.Semester != req.Semester {
			continue
		}
		result = append(result, m.preload(*s))
	}
	sortByDateAndStart(result)
	return result, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []model.Notification
	idCounter     int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	m.idCounter++
	if notification.NotificationID == "" {
		notification.NotificationID = fmt.Sprintf("notif-%d", m.idCounter)
	}
	notification.CreatedAt = time.Now()
	m.notifications = append(m.notifications, *notification)
	return nil
}

func (m *mockNotificationRepo) List(_ context.Context, req *dto.NotificationListRequest) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if req.TeacherID != "" && n.TeacherID != req.TeacherID {
			continue
		}
		if req.UnreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, int64(len(result)), nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	for i, n := range m.notifications {
		if n.NotificationID == id {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── 测试装配 ──

type testRepos struct {
	users         *mockUserRepo
	teachers      *mockTeacherRepo
	rooms         *mockRoomRepo
	sessions      *mockSessionRepo
	notifications *mockNotificationRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	users := newMockUserRepo()
	teachers := newMockTeacherRepo()
	rooms := newMockRoomRepo()
	sessions := newMockSessionRepo(teachers, rooms)
	teachers.sessions = sessions
	rooms.sessions = sessions
	notifications := newMockNotificationRepo()

	repo := &repository.Repository{
		User:         users,
		Teacher:      teachers,
		Room:         rooms,
		Session:      sessions,
		Notification: notifications,
	}
	return repo, &testRepos{
		users:         users,
		teachers:      teachers,
		rooms:         rooms,
		sessions:      sessions,
		notifications: notifications,
	}
}
