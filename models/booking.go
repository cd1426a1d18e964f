package models

import (
	"time"

	"hotelbooking/constants"
)

type Booking struct {
	ID         uint  `json:"id" gorm:"primaryKey"`
	HotelID    uint  `json:"hotelId" gorm:"index"`
	Hotel      Hotel `json:"hotel" gorm:"foreignKey:HotelID"`
	// RoomID nil nghĩa là đặt theo quỹ phòng của khách sạn, không gắn phòng cụ thể
	RoomID          *uint     `json:"roomId" gorm:"index"`
	Room            *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	CustomerID      *uint     `json:"customerId"`
	Customer        *User     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	GuestName       string    `json:"guestName"`
	GuestPhone      string    `json:"guestPhone"`
	GuestEmail      string    `json:"guestEmail,omitempty"`
	WhatsAppNumber  string    `json:"whatsappNumber,omitempty"`
	GuestCount      int       `json:"guestCount,omitempty"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	CheckInDate     time.Time `json:"checkInDate" gorm:"index"`
	CheckOutDate    time.Time `json:"checkOutDate"`
	TotalPrice      float64   `json:"totalPrice"`
	Status          int       `json:"status" gorm:"default:1"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Nights số đêm của booking, range nửa mở [checkIn, checkOut)
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

func (b *Booking) IsCancelled() bool {
	return b.Status == constants.BookingStatusCancelled
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == constants.BookingStatusConfirmed
}
