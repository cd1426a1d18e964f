package dto

// RoomRequest request tạo/cập nhật phòng
type RoomRequest struct {
	ID            uint     `json:"id"`
	HotelID       uint     `json:"hotelId"`
	RoomNumber    string   `json:"roomNumber"`
	RoomType      string   `json:"roomType"`
	Capacity      int      `json:"capacity"`
	PricePerNight float64  `json:"pricePerNight"`
	Features      []string `json:"features"`
}

// RoomResponse response thông tin phòng
type RoomResponse struct {
	ID            uint     `json:"id"`
	HotelID       uint     `json:"hotelId"`
	RoomNumber    string   `json:"roomNumber"`
	RoomType      string   `json:"roomType"`
	Capacity      int      `json:"capacity"`
	PricePerNight float64  `json:"pricePerNight"`
	IsAvailable   bool     `json:"isAvailable"`
	Features      []string `json:"features"`
}

// RoomFlagRequest request bật/tắt cờ tạm ngưng bán của phòng
type RoomFlagRequest struct {
	RoomID      uint `json:"roomId"`
	IsAvailable bool `json:"isAvailable"`
}
