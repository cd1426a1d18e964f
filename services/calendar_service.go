package services

import (
	stderrors "errors"
	"strings"
	"time"

	"hotelbooking/constants"
	"hotelbooking/errors"
	"hotelbooking/models"

	"gorm.io/gorm"
)

// CalendarService quản lý sổ lịch theo (phòng, ngày). Đây là nguồn sự thật
// cho tình trạng phòng theo ngày; cờ IsAvailable của phòng chỉ là trường
// tiện dụng, không dùng để kiểm tra trùng lịch.
type CalendarService struct {
	db *gorm.DB
}

// NewCalendarService tạo instance mới của CalendarService
func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{db: db}
}

// NormalizeDate cắt về 00:00 UTC để so sánh theo ngày
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetStatus trả về trạng thái của một (phòng, ngày). Không có dòng nào
// nghĩa là còn trống.
func (s *CalendarService) GetStatus(roomID uint, date time.Time) (int, error) {
	var entry models.CalendarEntry
	err := s.db.Where("room_id = ? AND date = ?", roomID, NormalizeDate(date)).First(&entry).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return constants.CalendarStatusAvailable, nil
	}
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được sổ lịch", err)
	}
	return entry.Status, nil
}

// RangeEntries trả về các dòng sổ lịch của phòng trong [from, to)
func (s *CalendarService) RangeEntries(roomID uint, from, to time.Time) ([]models.CalendarEntry, error) {
	var entries []models.CalendarEntry
	err := s.db.
		Where("room_id = ? AND date >= ? AND date < ?", roomID, NormalizeDate(from), NormalizeDate(to)).
		Order("date").
		Find(&entries).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được sổ lịch", err)
	}
	return entries, nil
}

// HasConflict kiểm tra có ngày nào trong [checkIn, checkOut) đã đặt,
// bị khóa hoặc đang bảo trì không.
func (s *CalendarService) HasConflict(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	var count int64
	err := tx.Model(&models.CalendarEntry{}).
		Where("room_id = ? AND date >= ? AND date < ? AND status <> ?",
			roomID, NormalizeDate(checkIn), NormalizeDate(checkOut), constants.CalendarStatusAvailable).
		Count(&count).Error
	if err != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được sổ lịch", err)
	}
	return count > 0, nil
}

// Reserve ghi một dòng "đã đặt" cho từng đêm trong [checkIn, checkOut).
// Chạy trong transaction của caller nên all-or-nothing: gặp xung đột thì
// trả lỗi và không đêm nào được giữ lại. Unique index (room_id, date) là
// chốt chặn cuối ở tầng storage nếu hai booking chen nhau.
func (s *CalendarService) Reserve(tx *gorm.DB, hotelID, roomID uint, checkIn, checkOut time.Time, bookingID uint, actorID uint) error {
	conflict, err := s.HasConflict(tx, roomID, checkIn, checkOut)
	if err != nil {
		return err
	}
	if conflict {
		return errors.NewAppError(errors.ErrCodeDateRangeConflict,
			"Phòng đã được đặt hoặc không khả dụng trong khoảng thời gian này", nil)
	}

	for date := NormalizeDate(checkIn); date.Before(NormalizeDate(checkOut)); date = date.AddDate(0, 0, 1) {
		var existing models.CalendarEntry
		err := tx.Where("room_id = ? AND date = ?", roomID, date).First(&existing).Error
		switch {
		case err == nil:
			// Dòng trống còn sót lại từ một lần release trước đó
			existing.Status = constants.CalendarStatusBooked
			existing.BookingID = &bookingID
			existing.UpdatedBy = actorID
			existing.Notes = ""
			if err := tx.Save(&existing).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không ghi được sổ lịch", err)
			}
		case stderrors.Is(err, gorm.ErrRecordNotFound):
			entry := models.CalendarEntry{
				HotelID:   hotelID,
				RoomID:    roomID,
				Date:      date,
				Status:    constants.CalendarStatusBooked,
				BookingID: &bookingID,
				UpdatedBy: actorID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				if isDuplicateKey(err) {
					return errors.NewAppError(errors.ErrCodeDateRangeConflict,
						"Phòng vừa được đặt bởi một yêu cầu khác", err)
				}
				return errors.NewAppError(errors.ErrCodeDBError, "Không ghi được sổ lịch", err)
			}
		default:
			return errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được sổ lịch", err)
		}
	}
	return nil
}

// Release trả lại các đêm của một booking về trạng thái trống và bỏ liên
// kết booking. Gọi nhiều lần không có tác dụng phụ thêm.
func (s *CalendarService) Release(tx *gorm.DB, bookingID uint) error {
	err := tx.Model(&models.CalendarEntry{}).
		Where("booking_id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":     constants.CalendarStatusAvailable,
			"booking_id": nil,
		}).Error
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không ghi được sổ lịch", err)
	}
	return nil
}

// SetManualStatus cho chủ/admin khóa, mở hoặc đánh dấu bảo trì một ngày,
// độc lập với booking. Không được đè lên một ngày đang gắn với booking
// còn hiệu lực; muốn vậy phải hủy booking trước.
func (s *CalendarService) SetManualStatus(roomID uint, date time.Time, status int, actorID uint, notes string) error {
	if status != constants.CalendarStatusAvailable &&
		status != constants.CalendarStatusBlocked &&
		status != constants.CalendarStatusMaintenance {
		return errors.NewAppError(errors.ErrCodeValidation, "Trạng thái không hợp lệ", nil)
	}

	day := NormalizeDate(date)
	return s.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, "room_id = ?", roomID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy phòng", errors.ErrRoomNotFound)
			}
			return errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được phòng", err)
		}

		var entry models.CalendarEntry
		err := tx.Where("room_id = ? AND date = ?", roomID, day).First(&entry).Error
		switch {
		case err == nil:
			if entry.Status == constants.CalendarStatusBooked && entry.BookingID != nil {
				var booking models.Booking
				if err := tx.First(&booking, *entry.BookingID).Error; err == nil && booking.IsConfirmed() {
					return errors.NewAppError(errors.ErrCodeBookingInProgress,
						"Ngày này đang gắn với một booking còn hiệu lực, cần hủy booking trước", nil)
				}
			}
			entry.Status = status
			entry.BookingID = nil
			entry.UpdatedBy = actorID
			entry.Notes = notes
			if err := tx.Save(&entry).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không ghi được sổ lịch", err)
			}
			return nil
		case stderrors.Is(err, gorm.ErrRecordNotFound):
			if status == constants.CalendarStatusAvailable {
				// Không có dòng nghĩa là đã trống sẵn
				return nil
			}
			entry = models.CalendarEntry{
				HotelID:   room.HotelID,
				RoomID:    roomID,
				Date:      day,
				Status:    status,
				UpdatedBy: actorID,
				Notes:     notes,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không ghi được sổ lịch", err)
			}
			return nil
		default:
			return errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được sổ lịch", err)
		}
	})
}

// isDuplicateKey nhận diện lỗi vi phạm unique index của Postgres/SQLite
func isDuplicateKey(err error) bool {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
