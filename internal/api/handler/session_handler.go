package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/service"
	pkgerrors "github.com/Anesbeng/exam-planning-sub000/pkg/errors"
	"github.com/Anesbeng/exam-planning-sub000/pkg/response"
)

// SessionHandler 考试场次 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// ListSessions 获取场次列表（分页 + 过滤）
// GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sessions, total, err := h.sessionSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, sessions, total, req.GetPage(), req.GetPageSize())
}

// GetSession 获取场次详情
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "场次ID不能为空")
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// CreateSession 创建场次（teacher_id 为空时自动指派监考）
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.SessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// UpdateSession 更新场次（冲突复检排除自身）
// PUT /api/v1/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "场次ID不能为空")
		return
	}

	var req dto.SessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// DeleteSession 删除场次
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "场次ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// BulkDeleteSessions 批量删除场次（逐条独立，返回逐条结果）
// POST /api/v1/sessions/bulk-delete
func (h *SessionHandler) BulkDeleteSessions(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.sessionSvc.BulkDelete(c.Request.Context(), req.IDs, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// handleSessionError 统一处理排考模块业务错误
//
// 冲突拒绝（*ConflictError）返回 409 并携带碰撞场次列表，
// 供前端直接展示是哪几场考试撞上了
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		if conflictErr.Dimension == "teacher" {
			response.Conflict(c, 14101, "该教师在此时段已有监考安排", conflictErr.ToPayload())
			return
		}
		response.Conflict(c, 14102, "该考场在此时段已被占用", conflictErr.ToPayload())
		return
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 14001, "考试场次不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.BadRequest(c, 14002, "指定的教师不存在")
	case errors.Is(err, service.ErrRoomNotFound):
		response.BadRequest(c, 14003, "指定的考场不存在")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 14004, "开始时间必须早于结束时间")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14005, "日期格式无效")
	case errors.Is(err, service.ErrNoTeacherAvailable):
		response.Conflict(c, 14103, "该时段没有空闲教师可供指派", nil)
	case errors.Is(err, pkgerrors.ErrBookingConflict):
		response.Conflict(c, 14104, "该时段刚被并发操作占用，请刷新后重试", nil)
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14105, "数据已被其他人修改，请刷新后重试", nil)
	default:
		response.InternalError(c)
	}
}
