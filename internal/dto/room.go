package dto

// ── 考场名册 DTO ──

// CreateRoomRequest 创建考场请求
type CreateRoomRequest struct {
	Name     string `json:"name"     binding:"required,max=100"`
	Capacity int    `json:"capacity" binding:"omitempty,min=0"`
	Location string `json:"location" binding:"omitempty,max=200"`
}

// UpdateRoomRequest 更新考场请求
type UpdateRoomRequest struct {
	Name     *string `json:"name"     binding:"omitempty,max=100"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=0"`
	Location *string `json:"location" binding:"omitempty,max=200"`
	IsActive *bool   `json:"is_active"`
}

// RoomListRequest 考场列表查询参数
type RoomListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// RoomResponse 考场信息响应
type RoomResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Location string `json:"location,omitempty"`
	IsActive bool   `json:"is_active"`
}
