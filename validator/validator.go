package validator

import (
	"regexp"
	"time"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/models"
)

// ValidateUser validate thông tin user
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email không được để trống", nil)
	}

	if !isValidEmail(user.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email không hợp lệ", nil)
	}

	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Mật khẩu không được để trống", nil)
	}

	if len(user.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Mật khẩu phải có ít nhất 6 ký tự", nil)
	}

	if user.PhoneNumber != "" && !isValidPhone(user.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Số điện thoại không hợp lệ", nil)
	}

	if user.Role < 0 || user.Role > 2 {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "Role không hợp lệ", nil)
	}

	return nil
}

// ValidateHotel validate thông tin khách sạn khi chủ đăng ký hoặc cập nhật
func ValidateHotel(hotel *models.Hotel) error {
	if hotel.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên khách sạn không được để trống", nil)
	}

	if hotel.Location == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Địa chỉ khách sạn không được để trống", nil)
	}

	if err := hotel.ValidateType(); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Loại chỗ ở không hợp lệ", err)
	}

	if hotel.PricePerNight <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Giá mỗi đêm phải lớn hơn 0", nil)
	}

	if hotel.TotalRooms <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Tổng số phòng phải lớn hơn 0", nil)
	}

	if hotel.Type == constants.HotelTypeVilla && hotel.TotalRooms != 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Villa nguyên căn chỉ có một đơn vị cho thuê", nil)
	}

	if hotel.ContactNumber != "" && !isValidPhone(hotel.ContactNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Số điện thoại liên hệ không hợp lệ", nil)
	}

	return nil
}

// ValidateRoom validate thông tin phòng
func ValidateRoom(room *models.Room) error {
	if room.HotelID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID khách sạn không được để trống", nil)
	}

	if room.RoomNumber == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Số phòng không được để trống", nil)
	}

	if room.Capacity <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Sức chứa phải lớn hơn 0", nil)
	}

	if room.PricePerNight <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Giá mỗi đêm phải lớn hơn 0", nil)
	}

	return nil
}

// ValidateBookingRequest kiểm tra định dạng của request đặt phòng.
// Các ràng buộc nghiệp vụ (ngày quá khứ, trùng lịch...) nằm ở booking service.
func ValidateBookingRequest(req *dto.BookingRequest) error {
	if req.HotelID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID khách sạn không được để trống", nil)
	}

	if _, err := time.Parse(constants.DateLayout, req.CheckInDate); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày nhận phòng không hợp lệ", err)
	}

	if _, err := time.Parse(constants.DateLayout, req.CheckOutDate); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày trả phòng không hợp lệ", err)
	}

	if req.GuestPhone != "" && !isValidPhone(req.GuestPhone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Số điện thoại khách không hợp lệ", nil)
	}

	if req.GuestEmail != "" && !isValidEmail(req.GuestEmail) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email khách không hợp lệ", nil)
	}

	if req.GuestCount < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số khách không hợp lệ", nil)
	}

	return nil
}

// isValidEmail kiểm tra email hợp lệ
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidPhone kiểm tra số điện thoại hợp lệ
func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9]{10}$`)
	return phoneRegex.MatchString(phone)
}

// ValidateEmail kiểm tra email hợp lệ
func ValidateEmail(email string) error {
	if !isValidEmail(email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email không hợp lệ", nil)
	}
	return nil
}

// ValidatePhone kiểm tra số điện thoại hợp lệ
func ValidatePhone(phone string) error {
	if !isValidPhone(phone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Số điện thoại không hợp lệ", nil)
	}
	return nil
}
