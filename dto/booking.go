package dto

import "time"

// BookingRequest request đặt phòng. RoomID bỏ trống nghĩa là đặt theo quỹ
// phòng của khách sạn, không gắn phòng cụ thể.
type BookingRequest struct {
	HotelID         uint   `json:"hotelId"`
	RoomID          *uint  `json:"roomId"`
	GuestName       string `json:"guestName"`
	GuestPhone      string `json:"guestPhone"`
	GuestEmail      string `json:"guestEmail,omitempty"`
	WhatsAppNumber  string `json:"whatsappNumber,omitempty"`
	GuestCount      int    `json:"guestCount,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	CheckInDate     string `json:"checkInDate"`
	CheckOutDate    string `json:"checkOutDate"`
}

// BookingHotelResponse thông tin khách sạn kèm theo booking
type BookingHotelResponse struct {
	ID            uint    `json:"id"`
	Type          int     `json:"type"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"pricePerNight"`
}

// BookingRoomResponse thông tin phòng kèm theo booking
type BookingRoomResponse struct {
	ID            uint    `json:"id"`
	HotelID       uint    `json:"hotelId"`
	RoomNumber    string  `json:"roomNumber"`
	PricePerNight float64 `json:"pricePerNight"`
}

// BookingResponse response cho một booking
type BookingResponse struct {
	ID              uint                 `json:"id"`
	Hotel           BookingHotelResponse `json:"hotel"`
	Room            *BookingRoomResponse `json:"room,omitempty"`
	Customer        *ActorResponse       `json:"customer,omitempty"`
	GuestName       string               `json:"guestName"`
	GuestPhone      string               `json:"guestPhone"`
	GuestEmail      string               `json:"guestEmail,omitempty"`
	GuestCount      int                  `json:"guestCount,omitempty"`
	SpecialRequests string               `json:"specialRequests,omitempty"`
	CheckInDate     string               `json:"checkInDate"`
	CheckOutDate    string               `json:"checkOutDate"`
	Nights          int                  `json:"nights"`
	TotalPrice      float64              `json:"totalPrice"`
	Status          int                  `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}
