package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/service"
	"github.com/Anesbeng/exam-planning-sub000/pkg/response"
)

// AvailabilityHandler 可用性查询与自动指派 HTTP 处理器
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
	assignSvc       service.AutoAssignService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService, assignSvc service.AutoAssignService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc, assignSvc: assignSvc}
}

// AvailableRooms 查询指定时段空闲的考场
// GET /api/v1/availability/rooms?date=2026-01-12&start=09:00&end=11:00
func (h *AvailabilityHandler) AvailableRooms(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rooms, err := h.availabilitySvc.AvailableRooms(c.Request.Context(), &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// AvailableTeachers 查询指定时段空闲的教师
// GET /api/v1/availability/teachers?date=2026-01-12&start=09:00&end=11:00
func (h *AvailabilityHandler) AvailableTeachers(c *gin.Context) {
	var req dto.TeacherAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teachers, err := h.availabilitySvc.AvailableTeachers(c.Request.Context(), &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, gin.H{"list": teachers})
}

// AutoAssign 按名册顺序指派第一个空闲教师
// POST /api/v1/availability/assign
func (h *AvailabilityHandler) AutoAssign(c *gin.Context) {
	var req dto.AutoAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacher, err := h.assignSvc.Assign(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoTeacherAvailable) {
			response.NotFound(c, 15001, "该时段没有空闲教师")
			return
		}
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, teacher)
}

// handleAvailabilityError 统一处理可用性模块业务错误
func (h *AvailabilityHandler) handleAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 15002, "开始时间必须早于结束时间")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 15003, "日期格式无效")
	default:
		response.InternalError(c)
	}
}
