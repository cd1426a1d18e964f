package dto

// CalendarOverrideRequest request chủ/admin khóa hoặc mở một ngày của phòng
type CalendarOverrideRequest struct {
	RoomID uint   `json:"roomId"`
	Date   string `json:"date"`
	Status int    `json:"status"` // 0: trống, 2: khóa, 3: bảo trì
	Notes  string `json:"notes,omitempty"`
}

// CalendarEntryResponse một dòng sổ lịch của phòng
type CalendarEntryResponse struct {
	RoomID    uint   `json:"roomId"`
	Date      string `json:"date"`
	Status    int    `json:"status"`
	BookingID *uint  `json:"bookingId,omitempty"`
	Notes     string `json:"notes,omitempty"`
}
