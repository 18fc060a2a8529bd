package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Anesbeng/exam-planning-sub000/internal/dto"
	"github.com/Anesbeng/exam-planning-sub000/internal/model"
	"github.com/Anesbeng/exam-planning-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSessions   = errors.New("该时间范围内无考试场次")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
	ErrExportBadRange     = errors.New("导出起始日期不能晚于结束日期")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportTimetable 将指定日期范围内的考试时间表导出为 Excel
	ExportTimetable(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportTimetable — 导出考试时间表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单 Sheet，一行一场次，按日期 + 开始时间升序
//   | 日期 | 时间 | 类型 | 模块 | 专业 | 级别 | 班组 | 学期 | 监考教师 | 考场 |
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportTimetable(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, error) {
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, "", ErrExportBadRange
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil || to.Before(from) {
		return nil, "", ErrExportBadRange
	}

	filters := &dto.SessionListRequest{
		Specialty: req.Specialty,
		Level:     req.Level,
		GroupName: req.GroupName,
		Semester:  req.Semester,
	}
	sessions, err := s.repo.Session.ListByRange(ctx, from, to, filters)
	if err != nil {
		s.logger.Error("查询导出场次失败", zap.Error(err))
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "考试时间表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	widths := map[string]float64{
		"A": 12, "B": 14, "C": 10, "D": 28, "E": 18,
		"F": 10, "G": 10, "H": 10, "I": 18, "J": 14,
	}
	for col, w := range widths {
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("考试时间表 %s ~ %s", req.From, req.To))
	f.MergeCell(sheetName, "A1", "J1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"日期", "时间", "类型", "模块", "专业", "级别", "班组", "学期", "监考教师", "考场"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", "J2", headerStyle)

	// 数据行
	row := 3
	for i := range sessions {
		sess := &sessions[i]
		teacherName := sess.TeacherID
		if sess.Teacher != nil {
			teacherName = sess.Teacher.Name
		}
		roomName := sess.RoomID
		if sess.Room != nil {
			roomName = sess.Room.Name
		}

		values := []interface{}{
			sess.DateKey(),
			fmt.Sprintf("%s-%s", sess.StartTime, sess.EndTime),
			kindLabel(sess.Kind),
			sess.ModuleName,
			sess.Specialty,
			sess.Level,
			sess.GroupName,
			sess.Semester,
			teacherName,
			roomName,
		}
		for col, v := range values {
			f.SetCellValue(sheetName, cell(colName(col), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("考试时间表_%s_%s.xlsx", req.From, req.To)
	return buf, filename, nil
}

// ── 辅助函数 ──

func kindLabel(kind string) string {
	switch kind {
	case model.KindExam:
		return "期末考试"
	case model.KindCC:
		return "平时测验"
	case model.KindRattrapage:
		return "补考"
	default:
		return kind
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
