package dto

// ── 导出 / 日历订阅 DTO ──

// ExportRequest 考试时间表导出查询参数
type ExportRequest struct {
	From      string `form:"from" binding:"required,datetime=2006-01-02"`
	To        string `form:"to"   binding:"required,datetime=2006-01-02"`
	Specialty string `form:"specialty"`
	Level     string `form:"level"`
	GroupName string `form:"group_name"`
	Semester  string `form:"semester"`
}
