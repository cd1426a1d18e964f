package models

import "time"

// CalendarEntry là một dòng sổ cái cho một (phòng, ngày). Không có dòng
// nghĩa là ngày đó còn trống. Unique index (room_id, date) đảm bảo mỗi
// (phòng, ngày) chỉ có một dòng, tầng storage tự chặn double booking.
type CalendarEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HotelID   uint      `gorm:"index" json:"hotelId"`
	RoomID    uint      `gorm:"uniqueIndex:idx_room_date" json:"roomId"`
	Date      time.Time `gorm:"uniqueIndex:idx_room_date" json:"date"`
	Status    int       `json:"status"` // 0: trống, 1: đã đặt, 2: khóa, 3: bảo trì
	BookingID *uint     `gorm:"index" json:"bookingId"`
	UpdatedBy uint      `json:"updatedBy"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
