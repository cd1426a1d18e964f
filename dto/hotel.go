package dto

import "time"

// HotelRequest request tạo/cập nhật khách sạn
type HotelRequest struct {
	ID             uint     `json:"id"`
	Type           int      `json:"type"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	ContactNumber  string   `json:"contactNumber"`
	OwnerEmail     string   `json:"ownerEmail"`
	WhatsAppNumber string   `json:"whatsappNumber"`
	PricePerNight  float64  `json:"pricePerNight"`
	TotalRooms     int      `json:"totalRooms"`
	Amenities      []string `json:"amenities"`
}

// HotelResponse response rút gọn cho danh sách khách sạn
type HotelResponse struct {
	ID             uint     `json:"id"`
	Type           int      `json:"type"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	PricePerNight  float64  `json:"pricePerNight"`
	TotalRooms     int      `json:"totalRooms"`
	AvailableRooms int      `json:"availableRooms"`
	Amenities      []string `json:"amenities"`
	IsApproved     bool     `json:"isApproved"`
}

// HotelDetailResponse response chi tiết khách sạn
type HotelDetailResponse struct {
	HotelResponse
	ContactNumber string         `json:"contactNumber"`
	OwnerEmail    string         `json:"ownerEmail"`
	ApprovedBy    *uint          `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time     `json:"approvedAt,omitempty"`
	Rooms         []RoomResponse `json:"rooms"`
}

// RoomDateStatus một ô trong lưới tình trạng phòng theo ngày
type RoomDateStatus struct {
	RoomID uint   `json:"roomId"`
	Date   string `json:"date"`
	Status int    `json:"status"`
}
