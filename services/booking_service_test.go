package services

import (
	"testing"

	"hotelbooking/constants"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingSuccess(t *testing.T) {
	svc, db, notifier := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	room := seedRoom(t, db, hotel.ID, "101", 5000)

	booking, err := svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(10), day(12)))
	require.NoError(t, err)

	assert.Equal(t, constants.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, float64(10000), booking.TotalPrice)
	assert.Equal(t, 2, booking.Nights())

	// Mỗi đêm một dòng sổ lịch, đêm trả phòng không bị giữ
	assert.Equal(t, int64(2), countCalendarEntries(t, db, room.RoomId, constants.CalendarStatusBooked))

	assert.Equal(t, 1, reloadHotel(t, db, hotel.ID).AvailableRooms)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notification.EventBookingCreated, notifier.events[0].Type)
	assert.Equal(t, "Nguyễn Văn A", notifier.events[0].Contact.Name)
}

func TestCreateBookingDateConflict(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	room := seedRoom(t, db, hotel.ID, "101", 5000)

	_, err := svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(10), day(13)))
	require.NoError(t, err)

	// Chồng một đêm với booking trước
	_, err = svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(12), day(14)))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDateRangeConflict))

	// Booking fail không để lại state: quỹ phòng và sổ lịch giữ nguyên
	assert.Equal(t, 1, reloadHotel(t, db, hotel.ID).AvailableRooms)
	assert.Equal(t, int64(3), countCalendarEntries(t, db, room.RoomId, constants.CalendarStatusBooked))

	var total int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestCreateBookingBackToBack(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	room := seedRoom(t, db, hotel.ID, "101", 5000)

	_, err := svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(10), day(12)))
	require.NoError(t, err)

	// Nhận phòng đúng ngày trả phòng của booking trước là hợp lệ
	_, err = svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(12), day(14)))
	require.NoError(t, err)
}

func TestCreateBookingInvalidDates(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	room := seedRoom(t, db, hotel.ID, "101", 5000)

	// checkOut bằng checkIn
	_, err := svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(10), day(10)))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidDateRange))

	// checkOut trước checkIn
	_, err = svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(12), day(10)))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidDateRange))

	// checkIn trong quá khứ
	_, err = svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(1).AddDate(0, -1, 0), day(10)))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodePastDate))
}

func TestCreateBookingMissingGuestInfo(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)

	input := bookingInput(hotel.ID, nil, day(10), day(12))
	input.GuestName = ""
	_, err := svc.CreateBooking(input)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidGuestInfo))

	input = bookingInput(hotel.ID, nil, day(10), day(12))
	input.GuestPhone = ""
	_, err = svc.CreateBooking(input)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidGuestInfo))
}

func TestCreateBookingRoomMismatch(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	other := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	otherRoom := seedRoom(t, db, other.ID, "201", 4000)

	_, err := svc.CreateBooking(bookingInput(hotel.ID, &otherRoom.RoomId, day(10), day(12)))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRoomMismatch))
}

func TestCreateBookingHotelNotApproved(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, false)

	_, err := svc.CreateBooking(bookingInput(hotel.ID, nil, day(10), day(12)))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeHotelNotApproved))
}

func TestCreateBookingWithdrawnRoom(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	room := seedRoom(t, db, hotel.ID, "101", 5000)
	require.NoError(t, db.Model(&models.Room{}).Where("room_id = ?", room.RoomId).
		UpdateColumn("is_available", false).Error)

	// Phòng rút khỏi bán bị chặn ngay ở validation, không phải đụng lịch
	_, err := svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(10), day(12)))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestCreateBookingHotelLevel(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 3, true)

	booking, err := svc.CreateBooking(bookingInput(hotel.ID, nil, day(10), day(13)))
	require.NoError(t, err)

	// Không gắn phòng cụ thể: giá theo khách sạn, không ghi sổ lịch
	assert.Nil(t, booking.RoomID)
	assert.Equal(t, float64(15000), booking.TotalPrice)
	assert.Equal(t, 2, reloadHotel(t, db, hotel.ID).AvailableRooms)

	var entries int64
	require.NoError(t, db.Model(&models.CalendarEntry{}).Count(&entries).Error)
	assert.Equal(t, int64(0), entries)
}

func TestCreateBookingCapacityExhausted(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 1, true)

	_, err := svc.CreateBooking(bookingInput(hotel.ID, nil, day(10), day(12)))
	require.NoError(t, err)

	_, err = svc.CreateBooking(bookingInput(hotel.ID, nil, day(20), day(22)))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCapacity))
	assert.Equal(t, 0, reloadHotel(t, db, hotel.ID).AvailableRooms)
}

func TestVillaBookingLocksUnit(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	villa := seedHotel(t, db, constants.HotelTypeVilla, 1, true)
	unit := seedRoom(t, db, villa.ID, "VILLA", 20000)

	booking, err := svc.CreateBooking(bookingInput(villa.ID, &unit.RoomId, day(10), day(12)))
	require.NoError(t, err)

	// Villa nguyên căn: đặt là khóa luôn đơn vị cho thuê
	assert.False(t, reloadRoom(t, db, unit.RoomId).IsAvailable)
	assert.Equal(t, 0, reloadHotel(t, db, villa.ID).AvailableRooms)

	_, err = svc.CancelBooking(booking.ID, 77, constants.RoleHotelAdmin)
	require.NoError(t, err)

	assert.True(t, reloadRoom(t, db, unit.RoomId).IsAvailable)
	assert.Equal(t, 1, reloadHotel(t, db, villa.ID).AvailableRooms)
}

func TestCancelBookingRoundTrip(t *testing.T) {
	svc, db, notifier := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	room := seedRoom(t, db, hotel.ID, "101", 5000)

	customerID := uint(5)
	input := bookingInput(hotel.ID, &room.RoomId, day(10), day(12))
	input.CustomerID = &customerID
	booking, err := svc.CreateBooking(input)
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(booking.ID, customerID, constants.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusCancelled, cancelled.Status)

	// Hủy đảo ngược mọi side effect
	assert.Equal(t, 2, reloadHotel(t, db, hotel.ID).AvailableRooms)
	assert.Equal(t, int64(0), countCalendarEntries(t, db, room.RoomId, constants.CalendarStatusBooked))

	require.Len(t, notifier.events, 2)
	assert.Equal(t, notification.EventBookingCancelled, notifier.events[1].Type)

	// Khoảng ngày vừa trả lại đặt được ngay
	_, err = svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(10), day(12)))
	require.NoError(t, err)
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)

	booking, err := svc.CreateBooking(bookingInput(hotel.ID, nil, day(10), day(12)))
	require.NoError(t, err)

	_, err = svc.CancelBooking(booking.ID, 1, constants.RoleSuperAdmin)
	require.NoError(t, err)

	// Hủy lần hai là lỗi, quỹ phòng không được cộng thêm
	_, err = svc.CancelBooking(booking.ID, 1, constants.RoleSuperAdmin)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAlreadyCancelled))
	assert.Equal(t, 2, reloadHotel(t, db, hotel.ID).AvailableRooms)
}

func TestCancelBookingAuthorization(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)

	customerID := uint(5)
	input := bookingInput(hotel.ID, nil, day(10), day(12))
	input.CustomerID = &customerID
	booking, err := svc.CreateBooking(input)
	require.NoError(t, err)

	// Khách khác không hủy được
	_, err = svc.CancelBooking(booking.ID, 99, constants.RoleCustomer)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))

	// Chủ khách sạn khác cũng không
	_, err = svc.CancelBooking(booking.ID, 99, constants.RoleHotelAdmin)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))

	// Chủ đúng khách sạn thì được
	_, err = svc.CancelBooking(booking.ID, hotel.OwnerID, constants.RoleHotelAdmin)
	require.NoError(t, err)
}

func TestCompleteDueBookings(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)

	booking, err := svc.CreateBooking(bookingInput(hotel.ID, nil, day(10), day(12)))
	require.NoError(t, err)
	_, err = svc.CreateBooking(bookingInput(hotel.ID, nil, day(20), day(22)))
	require.NoError(t, err)

	done, err := svc.CompleteDueBookings(day(15))
	require.NoError(t, err)
	assert.Equal(t, int64(1), done)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, constants.BookingStatusCompleted, reloaded.Status)

	// Hoàn thành trả lại đơn vị quỹ phòng: chỉ còn booking ngày 20 giữ
	assert.Equal(t, 1, reloadHotel(t, db, hotel.ID).AvailableRooms)

	// Booking đã hoàn thành không hủy được nữa, quỹ phòng không bị cộng đôi
	_, err = svc.CancelBooking(booking.ID, 1, constants.RoleSuperAdmin)
	require.Error(t, err)
	assert.Equal(t, 1, reloadHotel(t, db, hotel.ID).AvailableRooms)

	// Cron chạy lại không trả thêm lần nữa
	done, err = svc.CompleteDueBookings(day(15))
	require.NoError(t, err)
	assert.Equal(t, int64(0), done)
	assert.Equal(t, 1, reloadHotel(t, db, hotel.ID).AvailableRooms)
}

func TestCompleteDueBookingsRestoresCapacity(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 1, true)
	room := seedRoom(t, db, hotel.ID, "101", 5000)

	_, err := svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(10), day(12)))
	require.NoError(t, err)
	assert.Equal(t, 0, reloadHotel(t, db, hotel.ID).AvailableRooms)

	done, err := svc.CompleteDueBookings(day(15))
	require.NoError(t, err)
	assert.Equal(t, int64(1), done)

	// Quỹ phòng về lại như trước booking, sổ lịch không còn đêm nào bị giữ
	assert.Equal(t, 1, reloadHotel(t, db, hotel.ID).AvailableRooms)
	assert.Equal(t, int64(0), countCalendarEntries(t, db, room.RoomId, constants.CalendarStatusBooked))

	// Khách sạn full trước đó đặt lại được cho ngày tương lai
	_, err = svc.CreateBooking(bookingInput(hotel.ID, &room.RoomId, day(20), day(22)))
	require.NoError(t, err)
}

func TestCompleteDueBookingsVilla(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	villa := seedHotel(t, db, constants.HotelTypeVilla, 1, true)
	unit := seedRoom(t, db, villa.ID, "VILLA", 20000)

	_, err := svc.CreateBooking(bookingInput(villa.ID, &unit.RoomId, day(10), day(12)))
	require.NoError(t, err)
	assert.False(t, reloadRoom(t, db, unit.RoomId).IsAvailable)

	done, err := svc.CompleteDueBookings(day(12))
	require.NoError(t, err)
	assert.Equal(t, int64(1), done)

	// Hoàn thành mở lại cờ đơn vị villa như khi hủy
	assert.True(t, reloadRoom(t, db, unit.RoomId).IsAvailable)
	assert.Equal(t, 1, reloadHotel(t, db, villa.ID).AvailableRooms)
}

func TestSendCheckInReminders(t *testing.T) {
	svc, db, notifier := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 3, true)

	_, err := svc.CreateBooking(bookingInput(hotel.ID, nil, day(10), day(12)))
	require.NoError(t, err)
	_, err = svc.CreateBooking(bookingInput(hotel.ID, nil, day(11), day(12)))
	require.NoError(t, err)

	notifier.events = nil
	sent, err := svc.SendCheckInReminders(day(10))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, notification.EventCheckInReminder, notifier.events[0].Type)
}

func TestGetHotelAvailability(t *testing.T) {
	svc, db, _ := newTestBookingService(t)
	hotel := seedHotel(t, db, constants.HotelTypeHotel, 2, true)
	room1 := seedRoom(t, db, hotel.ID, "101", 5000)
	seedRoom(t, db, hotel.ID, "102", 5000)

	_, err := svc.CreateBooking(bookingInput(hotel.ID, &room1.RoomId, day(10), day(12)))
	require.NoError(t, err)

	grid, err := svc.GetHotelAvailability(hotel.ID, day(10), day(13))
	require.NoError(t, err)
	// 2 phòng x 3 ngày
	require.Len(t, grid, 6)

	booked := 0
	for _, cell := range grid {
		if cell.Status == constants.CalendarStatusBooked {
			booked++
			assert.Equal(t, room1.RoomId, cell.RoomID)
		}
	}
	assert.Equal(t, 2, booked)
}

func TestGetBookingByIDNotFound(t *testing.T) {
	svc, _, _ := newTestBookingService(t)

	_, err := svc.GetBookingByID(12345)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}
