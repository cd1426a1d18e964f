package services

import (
	"testing"
	"time"

	"hotelbooking/models"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testToday là "hôm nay" cố định để test không phụ thuộc đồng hồ máy
var testToday = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func day(dayOfMonth int) time.Time {
	return time.Date(2024, 6, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// sqlite in-memory: mỗi connection là một DB riêng, phải giữ đúng 1
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
		&models.CalendarEntry{},
	))
	return db
}

// recordingNotifier ghi lại các sự kiện để test kiểm tra
type recordingNotifier struct {
	events []notification.Event
}

func (r *recordingNotifier) Notify(event notification.Event) error {
	r.events = append(r.events, event)
	return nil
}

func newTestBookingService(t *testing.T) (*BookingService, *gorm.DB, *recordingNotifier) {
	t.Helper()
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewBookingService(db, notifier, logger.NewDefaultLogger(logger.ErrorLevel))
	svc.now = func() time.Time { return testToday }
	return svc, db, notifier
}

func seedHotel(t *testing.T, db *gorm.DB, hotelType, totalRooms int, approved bool) *models.Hotel {
	t.Helper()
	hotel := &models.Hotel{
		OwnerID:        77,
		Type:           hotelType,
		Name:           "Khách sạn Hoa Sen",
		Location:       "Đà Lạt",
		ContactNumber:  "0901234567",
		PricePerNight:  5000,
		TotalRooms:     totalRooms,
		AvailableRooms: totalRooms,
		IsApproved:     approved,
	}
	require.NoError(t, db.Create(hotel).Error)
	return hotel
}

func seedRoom(t *testing.T, db *gorm.DB, hotelID uint, roomNumber string, price float64) *models.Room {
	t.Helper()
	room := &models.Room{
		HotelID:       hotelID,
		RoomNumber:    roomNumber,
		RoomType:      "Deluxe",
		Capacity:      2,
		PricePerNight: price,
		IsAvailable:   true,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func bookingInput(hotelID uint, roomID *uint, checkIn, checkOut time.Time) CreateBookingInput {
	return CreateBookingInput{
		HotelID:    hotelID,
		RoomID:     roomID,
		GuestName:  "Nguyễn Văn A",
		GuestPhone: "0912345678",
		GuestCount: 2,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
}

func countCalendarEntries(t *testing.T, db *gorm.DB, roomID uint, status int) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.CalendarEntry{}).
		Where("room_id = ? AND status = ?", roomID, status).
		Count(&count).Error)
	return count
}

func reloadHotel(t *testing.T, db *gorm.DB, hotelID uint) *models.Hotel {
	t.Helper()
	var hotel models.Hotel
	require.NoError(t, db.First(&hotel, hotelID).Error)
	return &hotel
}

func reloadRoom(t *testing.T, db *gorm.DB, roomID uint) *models.Room {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, "room_id = ?", roomID).Error)
	return &room
}
