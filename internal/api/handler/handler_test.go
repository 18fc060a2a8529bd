package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/model"
	"github.com/Anesbeng/exam-planning-sub000/internal/service"
	pkgerrors "github.com/Anesbeng/exam-planning-sub000/pkg/errors"
	jwtpkg "github.com/Anesbeng/exam-planning-sub000/pkg/jwt"
	"github.com/Anesbeng/exam-planning-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	profileResult *dto.UserResponse
	profileErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwtpkg.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) GetProfile(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.profileResult, m.profileErr
}

// ── Mock SessionService ──

type mockSessionService struct {
	createResult *dto.SessionResponse
	createErr    error
	updateResult *dto.SessionResponse
	updateErr    error
	deleteErr    error
	bulkResult   *dto.BulkDeleteResponse
	bulkErr      error
	getResult    *dto.SessionResponse
	getErr       error
	listResult   []dto.SessionResponse
	listTotal    int64
	listErr      error
}

func (m *mockSessionService) Create(_ context.Context, _ *dto.SessionInput, _ string) (*dto.SessionResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockSessionService) Update(_ context.Context, _ string, _ *dto.SessionInput, _ string) (*dto.SessionResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockSessionService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockSessionService) BulkDelete(_ context.Context, _ []string, _ string) (*dto.BulkDeleteResponse, error) {
	return m.bulkResult, m.bulkErr
}
func (m *mockSessionService) GetByID(_ context.Context, _ string) (*dto.SessionResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSessionService) List(_ context.Context, _ *dto.SessionListRequest) ([]dto.SessionResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ── Mock AvailabilityService / AutoAssignService ──

type mockAvailabilityService struct {
	roomsResult    []dto.RoomResponse
	roomsErr       error
	teachersResult []dto.TeacherResponse
	teachersErr    error
}

func (m *mockAvailabilityService) AvailableRooms(_ context.Context, _ *dto.AvailabilityRequest) ([]dto.RoomResponse, error) {
	return m.roomsResult, m.roomsErr
}
func (m *mockAvailabilityService) AvailableTeachers(_ context.Context, _ *dto.TeacherAvailabilityRequest) ([]dto.TeacherResponse, error) {
	return m.teachersResult, m.teachersErr
}

type mockAssignService struct {
	assignResult *dto.TeacherResponse
	assignErr    error
}

func (m *mockAssignService) Assign(_ context.Context, _ *dto.AutoAssignRequest) (*dto.TeacherResponse, error) {
	return m.assignResult, m.assignErr
}

// ── Mock TeacherService / RoomService ──

type mockTeacherService struct {
	createResult *dto.TeacherResponse
	createErr    error
	getResult    *dto.TeacherResponse
	getErr       error
	listResult   []dto.TeacherResponse
	listErr      error
	updateResult *dto.TeacherResponse
	updateErr    error
	deleteErr    error
}

func (m *mockTeacherService) Create(_ context.Context, _ *dto.CreateTeacherRequest, _ string) (*dto.TeacherResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTeacherService) GetByID(_ context.Context, _ string) (*dto.TeacherResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTeacherService) List(_ context.Context, _ *dto.TeacherListRequest) ([]dto.TeacherResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTeacherService) Update(_ context.Context, _ string, _ *dto.UpdateTeacherRequest, _ string) (*dto.TeacherResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTeacherService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

type mockRoomService struct {
	createResult *dto.RoomResponse
	createErr    error
	getResult    *dto.RoomResponse
	getErr       error
	listResult   []dto.RoomResponse
	listErr      error
	updateResult *dto.RoomResponse
	updateErr    error
	deleteErr    error
}

func (m *mockRoomService) Create(_ context.Context, _ *dto.CreateRoomRequest, _ string) (*dto.RoomResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockRoomService) GetByID(_ context.Context, _ string) (*dto.RoomResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockRoomService) List(_ context.Context, _ *dto.RoomListRequest) ([]dto.RoomResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockRoomService) Update(_ context.Context, _ string, _ *dto.UpdateRoomRequest, _ string) (*dto.RoomResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockRoomService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock ExportService / CalendarService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportTimetable(_ context.Context, _ *dto.ExportRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

type mockCalendarService struct {
	feed string
	err  error
}

func (m *mockCalendarService) TeacherFeed(_ context.Context, _ string) (string, error) {
	return m.feed, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func validSessionInput() dto.SessionInput {
	return dto.SessionInput{
		Kind:       "exam",
		ModuleName: "Analyse 3",
		TeacherID:  "11111111-1111-1111-1111-111111111111",
		RoomID:     "22222222-2222-2222-2222-222222222222",
		Specialty:  "informatique",
		Level:      "L2",
		GroupName:  "G1",
		Semester:   "S3",
		Date:       "2026-01-12",
		StartTime:  "09:00",
		EndTime:    "11:00",
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_NotRefresh(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrNotRefreshToken})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "an-access-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.GetCurrentUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SessionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSessionHandler_Create_Success(t *testing.T) {
	mock := &mockSessionService{
		createResult: &dto.SessionResponse{ID: "sess-1", ModuleName: "Analyse 3"},
	}
	h := NewSessionHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/sessions", jsonBody(validSessionInput()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/sessions", func(c *gin.Context) {
		setAuth(c)
		h.CreateSession(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestSessionHandler_Create_BadJSON(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/sessions", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/sessions", func(c *gin.Context) {
		setAuth(c)
		h.CreateSession(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSessionHandler_Create_TeacherConflict(t *testing.T) {
	conflictErr := &service.ConflictError{
		Dimension: "teacher",
		Sessions: []model.ExamSession{
			{
				SessionID:  "other-1",
				ModuleName: "Algèbre 2",
				Date:       time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
				StartTime:  "10:00",
				EndTime:    "12:00",
			},
		},
	}
	h := NewSessionHandler(&mockSessionService{createErr: conflictErr})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/sessions", jsonBody(validSessionInput()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/sessions", func(c *gin.Context) {
		setAuth(c)
		h.CreateSession(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14101 {
		t.Errorf("expected error code 14101, got %d", resp.Code)
	}

	// 409 响应须携带碰撞场次负载
	payload, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatal("expected conflict payload in data")
	}
	if payload["dimension"] != "teacher" {
		t.Errorf("expected dimension teacher, got %v", payload["dimension"])
	}
	conflicts, ok := payload["conflicts"].([]interface{})
	if !ok || len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict entry, got %v", payload["conflicts"])
	}
}

func TestSessionHandler_Create_RoomConflict(t *testing.T) {
	conflictErr := &service.ConflictError{Dimension: "room"}
	h := NewSessionHandler(&mockSessionService{createErr: conflictErr})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/sessions", jsonBody(validSessionInput()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/sessions", func(c *gin.Context) {
		setAuth(c)
		h.CreateSession(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14102 {
		t.Errorf("expected error code 14102, got %d", resp.Code)
	}
}

func TestSessionHandler_BulkDelete_Success(t *testing.T) {
	mock := &mockSessionService{
		bulkResult: &dto.BulkDeleteResponse{
			Results: []dto.BulkDeleteResult{
				{ID: "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", Status: "deleted"},
				{ID: "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", Status: "not_found"},
			},
			Deleted: 1,
		},
	}
	h := NewSessionHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/sessions/bulk-delete", jsonBody(dto.BulkDeleteRequest{
		IDs: []string{
			"aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa",
			"bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb",
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/sessions/bulk-delete", func(c *gin.Context) {
		setAuth(c)
		h.BulkDeleteSessions(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSessionHandler_BulkDelete_EmptyIDs(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/sessions/bulk-delete", jsonBody(dto.BulkDeleteRequest{IDs: []string{}}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/sessions/bulk-delete", func(c *gin.Context) {
		setAuth(c)
		h.BulkDeleteSessions(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSessionHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"SessionNotFound", service.ErrSessionNotFound, 404, 14001},
		{"TeacherNotFound", service.ErrTeacherNotFound, 400, 14002},
		{"RoomNotFound", service.ErrRoomNotFound, 400, 14003},
		{"InvalidTimeRange", service.ErrInvalidTimeRange, 400, 14004},
		{"InvalidDate", service.ErrInvalidDate, 400, 14005},
		{"NoTeacherAvailable", service.ErrNoTeacherAvailable, 409, 14103},
		{"BookingConflict", pkgerrors.ErrBookingConflict, 409, 14104},
		{"OptimisticLock", pkgerrors.ErrOptimisticLock, 409, 14105},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSessionHandler(&mockSessionService{createErr: tt.err})

			w := setupRecorder()
			req := httptest.NewRequest("POST", "/sessions", jsonBody(validSessionInput()))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/sessions", func(c *gin.Context) {
				setAuth(c)
				h.CreateSession(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// TeacherHandler / RoomHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTeacherHandler_Delete_HasScheduledSessions(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{deleteErr: service.ErrTeacherHasSessions})

	w := setupRecorder()
	req := httptest.NewRequest("DELETE", "/teachers/teacher-1", nil)

	r := gin.New()
	r.DELETE("/teachers/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteTeacher(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12003 {
		t.Errorf("expected error code 12003, got %d", resp.Code)
	}
}

func TestTeacherHandler_Delete_NotFound(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{deleteErr: service.ErrTeacherNotFound})

	w := setupRecorder()
	req := httptest.NewRequest("DELETE", "/teachers/nope", nil)

	r := gin.New()
	r.DELETE("/teachers/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteTeacher(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestRoomHandler_Delete_HasScheduledSessions(t *testing.T) {
	h := NewRoomHandler(&mockRoomService{deleteErr: service.ErrRoomHasSessions})

	w := setupRecorder()
	req := httptest.NewRequest("DELETE", "/rooms/room-1", nil)

	r := gin.New()
	r.DELETE("/rooms/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteRoom(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AvailabilityHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAvailabilityHandler_AvailableRooms_Success(t *testing.T) {
	mock := &mockAvailabilityService{
		roomsResult: []dto.RoomResponse{
			{ID: "room-1", Name: "A101"},
			{ID: "room-2", Name: "B201"},
		},
	}
	h := NewAvailabilityHandler(mock, &mockAssignService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/availability/rooms?date=2026-01-12&start=09:00&end=11:00", nil)

	r := gin.New()
	r.GET("/availability/rooms", h.AvailableRooms)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAvailabilityHandler_AvailableRooms_MissingParams(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityService{}, &mockAssignService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/availability/rooms?date=2026-01-12", nil)

	r := gin.New()
	r.GET("/availability/rooms", h.AvailableRooms)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAvailabilityHandler_AvailableTeachers_InvalidRange(t *testing.T) {
	h := NewAvailabilityHandler(
		&mockAvailabilityService{teachersErr: service.ErrInvalidTimeRange},
		&mockAssignService{},
	)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/availability/teachers?date=2026-01-12&start=11:00&end=09:00", nil)

	r := gin.New()
	r.GET("/availability/teachers", h.AvailableTeachers)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15002 {
		t.Errorf("expected error code 15002, got %d", resp.Code)
	}
}

func TestAvailabilityHandler_AutoAssign_Success(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityService{}, &mockAssignService{
		assignResult: &dto.TeacherResponse{ID: "teacher-1", Name: "Amrani"},
	})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/availability/assign", jsonBody(dto.AutoAssignRequest{
		Date:      "2026-01-12",
		StartTime: "09:00",
		EndTime:   "11:00",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/availability/assign", func(c *gin.Context) {
		setAuth(c)
		h.AutoAssign(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAvailabilityHandler_AutoAssign_NoneAvailable(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityService{}, &mockAssignService{
		assignErr: service.ErrNoTeacherAvailable,
	})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/availability/assign", jsonBody(dto.AutoAssignRequest{
		Date:      "2026-01-12",
		StartTime: "09:00",
		EndTime:   "11:00",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/availability/assign", func(c *gin.Context) {
		setAuth(c)
		h.AutoAssign(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Timetable_Success(t *testing.T) {
	buf := bytes.NewBufferString("excel content")
	h := NewExportHandler(&mockExportService{
		buf:      buf,
		filename: "考试时间表_2026-01-05_2026-01-20.xlsx",
	}, &mockCalendarService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/timetable?from=2026-01-05&to=2026-01-20", nil)

	r := gin.New()
	r.GET("/export/timetable", h.ExportTimetable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_Timetable_MissingRange(t *testing.T) {
	h := NewExportHandler(&mockExportService{}, &mockCalendarService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/timetable?from=2026-01-05", nil)

	r := gin.New()
	r.GET("/export/timetable", h.ExportTimetable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_Timetable_NoSessions(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoSessions}, &mockCalendarService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/timetable?from=2026-01-05&to=2026-01-20", nil)

	r := gin.New()
	r.GET("/export/timetable", h.ExportTimetable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestExportHandler_Calendar_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{}, &mockCalendarService{
		feed: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
	})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/calendar/teacher-1", nil)

	r := gin.New()
	r.GET("/export/calendar/:teacher_id", h.TeacherCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("BEGIN:VCALENDAR")) {
		t.Error("expected ICS body")
	}
}

func TestExportHandler_Calendar_TeacherNotFound(t *testing.T) {
	h := NewExportHandler(&mockExportService{}, &mockCalendarService{
		err: service.ErrTeacherNotFound,
	})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/calendar/nope", nil)

	r := gin.New()
	r.GET("/export/calendar/:teacher_id", h.TeacherCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
