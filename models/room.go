package models

import "time"

type Room struct {
	RoomId        uint       `json:"id" gorm:"primaryKey"`
	HotelID       uint       `json:"hotelId" gorm:"uniqueIndex:idx_hotel_room_number"`
	RoomNumber    string     `json:"roomNumber" gorm:"uniqueIndex:idx_hotel_room_number"`
	RoomType      string     `json:"roomType"`
	Capacity      int        `json:"capacity"`
	PricePerNight float64    `json:"pricePerNight"`
	// IsAvailable chỉ mang nghĩa "tạm ngưng bán" (bảo trì), do chủ khách sạn
	// đặt trực tiếp. Tình trạng theo ngày nằm ở CalendarEntry.
	IsAvailable bool       `json:"isAvailable" gorm:"default:true"`
	Features    StringList `json:"features" gorm:"type:text"`
	Hotel       Hotel      `json:"-" gorm:"foreignKey:HotelID"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}
