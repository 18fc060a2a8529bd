package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/service"
	"github.com/Anesbeng/exam-planning-sub000/pkg/response"
)

// ExportHandler 导出与日历订阅 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportTimetable 导出考试时间表为 Excel
// GET /api/v1/export/timetable?from=2026-01-05&to=2026-01-20
func (h *ExportHandler) ExportTimetable(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportTimetable(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// TeacherCalendar 教师监考日历订阅（iCalendar 信息流）
// GET /api/v1/export/calendar/:teacher_id
func (h *ExportHandler) TeacherCalendar(c *gin.Context) {
	teacherID := c.Param("teacher_id")
	if teacherID == "" {
		response.BadRequest(c, 10001, "teacher_id 不能为空")
		return
	}

	feed, err := h.calendarSvc.TeacherFeed(c.Request.Context(), teacherID)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			response.NotFound(c, 12001, "教师不存在")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "inline; filename=invigilations.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoSessions):
		response.NotFound(c, 17001, "该时间范围内无考试场次")
	case errors.Is(err, service.ErrExportBadRange):
		response.BadRequest(c, 17002, "导出日期范围无效")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
