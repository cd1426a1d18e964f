package services

import (
	"testing"

	"hotelbooking/constants"
	"hotelbooking/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryCounters(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)

	require.NoError(t, inv.DecrementAvailableRooms(db, hotel.ID))
	require.NoError(t, inv.DecrementAvailableRooms(db, hotel.ID))
	assert.Equal(t, 0, reloadHotel(t, db, hotel.ID).AvailableRooms)

	// Hết phòng thì trừ tiếp là lỗi, không bao giờ âm
	err := inv.DecrementAvailableRooms(db, hotel.ID)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCapacity))
	assert.Equal(t, 0, reloadHotel(t, db, hotel.ID).AvailableRooms)

	require.NoError(t, inv.IncrementAvailableRooms(db, hotel.ID))
	require.NoError(t, inv.IncrementAvailableRooms(db, hotel.ID))
	assert.Equal(t, 2, reloadHotel(t, db, hotel.ID).AvailableRooms)

	// Cộng vượt tổng số phòng cũng là lỗi
	err = inv.IncrementAvailableRooms(db, hotel.ID)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCapacity))
	assert.Equal(t, 2, reloadHotel(t, db, hotel.ID).AvailableRooms)
}

func TestInventoryCountersHotelNotFound(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db)

	err := inv.DecrementAvailableRooms(db, 9999)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestInventoryRoomFlags(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	room := seedRoom(t, db, hotel.ID, "101", 5000)

	require.NoError(t, inv.MarkRoomUnavailable(db, room.RoomId))
	assert.False(t, reloadRoom(t, db, room.RoomId).IsAvailable)

	// Gọi lại khi cờ đã tắt vẫn là no-op
	require.NoError(t, inv.MarkRoomUnavailable(db, room.RoomId))

	require.NoError(t, inv.MarkRoomAvailable(db, room.RoomId))
	assert.True(t, reloadRoom(t, db, room.RoomId).IsAvailable)

	err := inv.MarkRoomUnavailable(db, 9999)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestApproveHotel(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, false)

	approved, err := inv.ApproveHotel(hotel.ID, 1, testToday)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, uint(1), *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	// Duyệt lại là lỗi
	_, err = inv.ApproveHotel(hotel.ID, 1, testToday)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAlreadyApproved))

	_, err = inv.ApproveHotel(9999, 1, testToday)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestResetApproval(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, false)

	approved, err := inv.ApproveHotel(hotel.ID, 1, testToday)
	require.NoError(t, err)

	require.NoError(t, inv.ResetApproval(db, approved))

	reloaded := reloadHotel(t, db, hotel.ID)
	assert.False(t, reloaded.IsApproved)
	assert.Nil(t, reloaded.ApprovedBy)
	assert.Nil(t, reloaded.ApprovedAt)
}
