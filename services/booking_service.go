package services

import (
	stderrors "errors"
	"sync"
	"time"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"

	"gorm.io/gorm"
)

// CreateBookingInput dữ liệu đầu vào cho một lần đặt phòng.
// RoomID nil nghĩa là đặt theo quỹ phòng của khách sạn.
type CreateBookingInput struct {
	HotelID         uint
	RoomID          *uint
	CustomerID      *uint
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	WhatsAppNumber  string
	GuestCount      int
	SpecialRequests string
	CheckIn         time.Time
	CheckOut        time.Time
}

// BookingService là lối vào duy nhất cho việc tạo và hủy booking; mọi
// mutation lên quỹ phòng và sổ lịch đều đi qua đây.
type BookingService struct {
	db        *gorm.DB
	inventory *InventoryService
	calendar  *CalendarService
	notifier  notification.Notifier
	logger    logger.Logger

	// roomLocks giữ check-conflict và reserve của cùng một phòng không
	// chen nhau; unique index (room_id, date) là chốt chặn ở tầng DB.
	roomLocks sync.Map

	now func() time.Time
}

// NewBookingService tạo instance mới của BookingService
func NewBookingService(db *gorm.DB, notifier notification.Notifier, log logger.Logger) *BookingService {
	return &BookingService{
		db:        db,
		inventory: NewInventoryService(db),
		calendar:  NewCalendarService(db),
		notifier:  notifier,
		logger:    log,
		now:       time.Now,
	}
}

// Inventory trả về inventory service dùng chung
func (s *BookingService) Inventory() *InventoryService {
	return s.inventory
}

// Calendar trả về calendar service dùng chung
func (s *BookingService) Calendar() *CalendarService {
	return s.calendar
}

func (s *BookingService) lockRoom(roomID uint) func() {
	v, _ := s.roomLocks.LoadOrStore(roomID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateBooking validate, tính giá và commit booking trong một transaction.
// Trước khi commit không có state nào bị ghi; lỗi validation trả về
// synchronous với mã lỗi cụ thể.
func (s *BookingService) CreateBooking(input CreateBookingInput) (*models.Booking, error) {
	checkIn := NormalizeDate(input.CheckIn)
	checkOut := NormalizeDate(input.CheckOut)
	today := NormalizeDate(s.now())

	if !checkIn.Before(checkOut) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidDateRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}
	if checkIn.Before(today) {
		return nil, errors.NewAppError(errors.ErrCodePastDate, "Ngày nhận phòng không được nhỏ hơn ngày hiện tại", nil)
	}
	if input.GuestName == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidGuestInfo, "Tên khách không được để trống", nil)
	}
	if input.GuestPhone == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidGuestInfo, "Số điện thoại khách không được để trống", nil)
	}

	var hotel models.Hotel
	if err := s.db.First(&hotel, input.HotelID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy khách sạn", errors.ErrHotelNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được khách sạn", err)
	}
	if !hotel.IsApproved {
		return nil, errors.NewAppError(errors.ErrCodeHotelNotApproved, "Khách sạn chưa được duyệt", nil)
	}

	var room *models.Room
	if input.RoomID != nil {
		var r models.Room
		if err := s.db.First(&r, "room_id = ?", *input.RoomID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy phòng", errors.ErrRoomNotFound)
			}
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được phòng", err)
		}
		if r.HotelID != hotel.ID {
			return nil, errors.NewAppError(errors.ErrCodeRoomMismatch, "Phòng không thuộc khách sạn này", nil)
		}
		if !r.IsAvailable {
			return nil, errors.NewAppError(errors.ErrCodeValidation, "Phòng đang tạm ngưng bán", nil)
		}
		room = &r
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidDateRange, "Số đêm phải lớn hơn 0", nil)
	}

	pricePerNight := hotel.PricePerNight
	if room != nil {
		pricePerNight = room.PricePerNight
	}

	booking := models.Booking{
		HotelID:         hotel.ID,
		RoomID:          input.RoomID,
		CustomerID:      input.CustomerID,
		GuestName:       input.GuestName,
		GuestPhone:      input.GuestPhone,
		GuestEmail:      input.GuestEmail,
		WhatsAppNumber:  input.WhatsAppNumber,
		GuestCount:      input.GuestCount,
		SpecialRequests: input.SpecialRequests,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		TotalPrice:      float64(nights) * pricePerNight,
		Status:          constants.BookingStatusConfirmed,
	}

	if room != nil {
		unlock := s.lockRoom(room.RoomId)
		defer unlock()
	}

	actorID := uint(0)
	if input.CustomerID != nil {
		actorID = *input.CustomerID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không tạo được booking", err)
		}
		if room != nil {
			if err := s.calendar.Reserve(tx, hotel.ID, room.RoomId, checkIn, checkOut, booking.ID, actorID); err != nil {
				return err
			}
		}
		if err := s.inventory.DecrementAvailableRooms(tx, hotel.ID); err != nil {
			return err
		}
		// Với villa nguyên căn, đặt là khóa luôn đơn vị cho thuê. Khách sạn
		// nhiều phòng chỉ khóa theo ngày qua sổ lịch, không đụng cờ phòng.
		if room != nil && hotel.Type == constants.HotelTypeVilla {
			if err := s.inventory.MarkRoomUnavailable(tx, room.RoomId); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(notification.EventBookingCreated, &booking, &hotel)

	return s.getBooking(booking.ID)
}

// CancelBooking đảo ngược các side effect của một booking: trả lịch, cộng
// lại quỹ phòng, mở lại cờ phòng villa. Bản ghi booking được giữ lại.
func (s *BookingService) CancelBooking(bookingID uint, actorID uint, actorRole int) (*models.Booking, error) {
	booking, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}

	if !s.canCancel(booking, actorID, actorRole) {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "Không có quyền hủy booking này", errors.ErrUnauthorized)
	}

	if booking.IsCancelled() {
		return nil, errors.NewAppError(errors.ErrCodeAlreadyCancelled, "Booking đã được hủy trước đó", errors.ErrBookingCancelled)
	}
	if booking.Status == constants.BookingStatusCompleted {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Booking đã hoàn thành, không thể hủy", errors.ErrBookingCompleted)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Update có điều kiện để hai lần hủy chen nhau (hoặc hủy chen với
		// cron hoàn thành) chỉ có một bên trả side effect
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, constants.BookingStatusConfirmed).
			UpdateColumn("status", constants.BookingStatusCancelled)
		if res.Error != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được booking", res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.NewAppError(errors.ErrCodeAlreadyCancelled, "Booking đã được hủy trước đó", errors.ErrBookingCancelled)
		}
		if booking.RoomID != nil {
			if err := s.calendar.Release(tx, booking.ID); err != nil {
				return err
			}
		}
		if err := s.inventory.IncrementAvailableRooms(tx, booking.HotelID); err != nil {
			return err
		}
		if booking.RoomID != nil && booking.Hotel.Type == constants.HotelTypeVilla {
			if err := s.inventory.MarkRoomAvailable(tx, *booking.RoomID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = constants.BookingStatusCancelled
	s.emit(notification.EventBookingCancelled, booking, &booking.Hotel)

	return booking, nil
}

func (s *BookingService) canCancel(booking *models.Booking, actorID uint, actorRole int) bool {
	switch {
	case actorRole == constants.RoleSuperAdmin:
		return true
	case actorRole == constants.RoleHotelAdmin && booking.Hotel.OwnerID == actorID:
		return true
	case booking.CustomerID != nil && *booking.CustomerID == actorID:
		return true
	}
	return false
}

// CompleteDueBookings chuyển các booking đã qua ngày trả phòng sang trạng
// thái hoàn thành và trả lại đơn vị quỹ phòng mà booking đang giữ, như
// hủy booking nhưng giữ nguyên trạng thái completed. Cron gọi mỗi ngày
// lúc 0h.
func (s *BookingService) CompleteDueBookings(now time.Time) (int64, error) {
	var due []models.Booking
	err := s.db.Preload("Hotel").
		Where("status = ? AND check_out_date <= ?", constants.BookingStatusConfirmed, NormalizeDate(now)).
		Find(&due).Error
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được booking", err)
	}

	var completed int64
	for i := range due {
		booking := &due[i]
		flipped := false
		err := s.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Booking{}).
				Where("id = ? AND status = ?", booking.ID, constants.BookingStatusConfirmed).
				UpdateColumn("status", constants.BookingStatusCompleted)
			if res.Error != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được booking", res.Error)
			}
			// Booking vừa bị hủy chen ngang thì side effect đã được trả rồi
			if res.RowsAffected == 0 {
				return nil
			}
			flipped = true
			if booking.RoomID != nil {
				if err := s.calendar.Release(tx, booking.ID); err != nil {
					return err
				}
			}
			if err := s.inventory.IncrementAvailableRooms(tx, booking.HotelID); err != nil {
				return err
			}
			if booking.RoomID != nil && booking.Hotel.Type == constants.HotelTypeVilla {
				if err := s.inventory.MarkRoomAvailable(tx, *booking.RoomID); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return completed, err
		}
		if flipped {
			completed++
		}
	}
	return completed, nil
}

// ListCheckInsOn trả về các booking còn hiệu lực nhận phòng đúng ngày cho
// trước (cron nhắc lịch dùng).
func (s *BookingService) ListCheckInsOn(date time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Hotel").Preload("Room").
		Where("status = ? AND check_in_date = ?", constants.BookingStatusConfirmed, NormalizeDate(date)).
		Find(&bookings).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được booking", err)
	}
	return bookings, nil
}

// SendCheckInReminders gửi nhắc lịch cho các booking nhận phòng đúng ngày
// cho trước. Gửi là best-effort, booking lỗi chỉ ghi log rồi đi tiếp.
func (s *BookingService) SendCheckInReminders(date time.Time) (int, error) {
	bookings, err := s.ListCheckInsOn(date)
	if err != nil {
		return 0, err
	}
	for i := range bookings {
		s.emit(notification.EventCheckInReminder, &bookings[i], &bookings[i].Hotel)
	}
	return len(bookings), nil
}

// GetHotelAvailability trả về lưới trạng thái từng phòng theo từng ngày
// trong [from, to). Ngày không có dòng sổ lịch được điền là còn trống.
func (s *BookingService) GetHotelAvailability(hotelID uint, from, to time.Time) ([]dto.RoomDateStatus, error) {
	if !NormalizeDate(from).Before(NormalizeDate(to)) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidDateRange, "Khoảng ngày không hợp lệ", nil)
	}

	var hotel models.Hotel
	if err := s.db.Preload("Rooms").First(&hotel, hotelID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy khách sạn", errors.ErrHotelNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được khách sạn", err)
	}

	var entries []models.CalendarEntry
	err := s.db.
		Where("hotel_id = ? AND date >= ? AND date < ?", hotelID, NormalizeDate(from), NormalizeDate(to)).
		Find(&entries).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được sổ lịch", err)
	}

	type key struct {
		roomID uint
		date   time.Time
	}
	statusByDay := make(map[key]int, len(entries))
	for _, e := range entries {
		statusByDay[key{e.RoomID, NormalizeDate(e.Date)}] = e.Status
	}

	var grid []dto.RoomDateStatus
	for _, room := range hotel.Rooms {
		for date := NormalizeDate(from); date.Before(NormalizeDate(to)); date = date.AddDate(0, 0, 1) {
			status := constants.CalendarStatusAvailable
			if st, ok := statusByDay[key{room.RoomId, date}]; ok {
				status = st
			}
			grid = append(grid, dto.RoomDateStatus{
				RoomID: room.RoomId,
				Date:   date.Format(constants.DateLayout),
				Status: status,
			})
		}
	}
	return grid, nil
}

// GetBookingByID lấy booking kèm khách sạn, phòng và khách hàng
func (s *BookingService) GetBookingByID(bookingID uint) (*models.Booking, error) {
	return s.getBooking(bookingID)
}

func (s *BookingService) getBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Preload("Hotel").Preload("Room").Preload("Customer").First(&booking, bookingID).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy booking", errors.ErrBookingNotFound)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được booking", err)
	}
	return &booking, nil
}

// emit gửi sự kiện cho notification gateway, lỗi chỉ ghi log, không bao
// giờ làm hỏng booking.
func (s *BookingService) emit(event string, booking *models.Booking, hotel *models.Hotel) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(notification.Event{
		Type:    event,
		Booking: booking,
		Hotel:   hotel,
		Contact: notification.Contact{
			Name:     booking.GuestName,
			Phone:    booking.GuestPhone,
			Email:    booking.GuestEmail,
			WhatsApp: booking.WhatsAppNumber,
		},
	}); err != nil && s.logger != nil {
		s.logger.Error("Gửi thông báo %s cho booking %d thất bại: %v", event, booking.ID, err)
	}
}
