package models

import (
	"fmt"
	"time"
)

type Hotel struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	OwnerID        uint       `json:"ownerId"`
	Owner          User       `json:"owner" gorm:"foreignKey:OwnerID"`
	Type           int        `json:"type"` // 0: khách sạn nhiều phòng, 1: villa nguyên căn
	Name           string     `json:"name"`
	Location       string     `json:"location"`
	Description    string     `json:"description"`
	ContactNumber  string     `json:"contactNumber"`
	OwnerEmail     string     `json:"ownerEmail"`
	WhatsAppNumber string     `json:"whatsappNumber"`
	PricePerNight  float64    `json:"pricePerNight"`
	TotalRooms     int        `json:"totalRooms"`
	AvailableRooms int        `json:"availableRooms"`
	Amenities      StringList `json:"amenities" gorm:"type:text"`
	IsApproved     bool       `json:"isApproved" gorm:"default:false"`
	ApprovedBy     *uint      `json:"approvedBy"`
	ApprovedAt     *time.Time `json:"approvedAt"`
	Rooms          []Room     `json:"rooms" gorm:"foreignKey:HotelID"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (h *Hotel) ValidateType() error {
	if h.Type < 0 || h.Type > 1 {
		return fmt.Errorf("invalid Type: %d, must be 0 or 1", h.Type)
	}
	return nil
}

// ValidateCounters kiểm tra invariant 0 <= AvailableRooms <= TotalRooms
func (h *Hotel) ValidateCounters() error {
	if h.AvailableRooms < 0 || h.AvailableRooms > h.TotalRooms {
		return fmt.Errorf("invalid counters: available %d, total %d", h.AvailableRooms, h.TotalRooms)
	}
	return nil
}
