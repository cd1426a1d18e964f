package controllers

import (
	"testing"

	"hotelbooking/models"

	"github.com/stretchr/testify/assert"
)

func TestBookingCacheKeys(t *testing.T) {
	customerID := uint(5)
	booking := &models.Booking{
		HotelID:    1,
		Hotel:      models.Hotel{ID: 1, OwnerID: 77},
		CustomerID: &customerID,
	}

	keys := bookingCacheKeys(booking)

	// Cache danh sách của chủ khách sạn cũng phải bị xóa, không chỉ của khách đặt
	assert.Contains(t, keys, hotelsCacheKey)
	assert.Contains(t, keys, "bookings:all:user:77")
	assert.Contains(t, keys, "bookings:all:user:5")
}

func TestBookingCacheKeysGuestBooking(t *testing.T) {
	booking := &models.Booking{
		HotelID: 1,
		Hotel:   models.Hotel{ID: 1, OwnerID: 77},
	}

	keys := bookingCacheKeys(booking)

	assert.Equal(t, []string{hotelsCacheKey, "bookings:all:user:77"}, keys)
}
