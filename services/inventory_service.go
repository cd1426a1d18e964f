package services

import (
	stderrors "errors"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"

	"gorm.io/gorm"
)

// InventoryService quản lý quỹ phòng và trạng thái duyệt của khách sạn.
// Các method nhận tx để chạy trong transaction của booking service.
type InventoryService struct {
	db *gorm.DB
}

// NewInventoryService tạo instance mới của InventoryService
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// DecrementAvailableRooms trừ 1 phòng trống của khách sạn.
// Update có điều kiện để không bao giờ âm, kể cả khi chạy song song.
func (s *InventoryService) DecrementAvailableRooms(tx *gorm.DB, hotelID uint) error {
	res := tx.Model(&models.Hotel{}).
		Where("id = ? AND available_rooms > 0", hotelID).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms - 1"))
	if res.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được số phòng trống", res.Error)
	}
	if res.RowsAffected == 0 {
		if err := s.ensureHotelExists(tx, hotelID); err != nil {
			return err
		}
		return errors.NewAppError(errors.ErrCodeCapacity, "Khách sạn đã hết phòng trống", errors.ErrNoRoomsLeft)
	}
	return nil
}

// IncrementAvailableRooms cộng lại 1 phòng trống, chặn vượt quá tổng số
// phòng (hủy hai lần không được cộng hai lần).
func (s *InventoryService) IncrementAvailableRooms(tx *gorm.DB, hotelID uint) error {
	res := tx.Model(&models.Hotel{}).
		Where("id = ? AND available_rooms < total_rooms", hotelID).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms + 1"))
	if res.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được số phòng trống", res.Error)
	}
	if res.RowsAffected == 0 {
		if err := s.ensureHotelExists(tx, hotelID); err != nil {
			return err
		}
		return errors.NewAppError(errors.ErrCodeCapacity, "Số phòng trống đã đạt tối đa", nil)
	}
	return nil
}

// MarkRoomUnavailable tạm ngưng bán một phòng. Gọi lại khi đã tắt cờ là no-op.
func (s *InventoryService) MarkRoomUnavailable(tx *gorm.DB, roomID uint) error {
	return s.setRoomFlag(tx, roomID, false)
}

// MarkRoomAvailable mở bán lại một phòng. Gọi lại khi đã bật cờ là no-op.
func (s *InventoryService) MarkRoomAvailable(tx *gorm.DB, roomID uint) error {
	return s.setRoomFlag(tx, roomID, true)
}

func (s *InventoryService) setRoomFlag(tx *gorm.DB, roomID uint, available bool) error {
	res := tx.Model(&models.Room{}).
		Where("room_id = ?", roomID).
		UpdateColumn("is_available", available)
	if res.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được trạng thái phòng", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Room{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được phòng", err)
		}
		if count == 0 {
			return errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy phòng", errors.ErrRoomNotFound)
		}
	}
	return nil
}

// ApproveHotel chuyển khách sạn từ chờ duyệt sang đã duyệt, ghi lại
// người duyệt và thời điểm. Duyệt lại một khách sạn đã duyệt là lỗi.
func (s *InventoryService) ApproveHotel(hotelID uint, approverID uint, now time.Time) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, hotelID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy khách sạn", errors.ErrHotelNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được khách sạn", err)
	}

	if hotel.IsApproved {
		return nil, errors.NewAppError(errors.ErrCodeAlreadyApproved, "Khách sạn đã được duyệt trước đó", nil)
	}

	hotel.IsApproved = true
	hotel.ApprovedBy = &approverID
	hotel.ApprovedAt = &now
	if err := s.db.Save(&hotel).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không lưu được trạng thái duyệt", err)
	}
	return &hotel, nil
}

// ResetApproval đưa khách sạn về trạng thái chờ duyệt (dùng khi policy
// REAPPROVE_ON_EDIT bật và chủ sửa thông tin).
func (s *InventoryService) ResetApproval(tx *gorm.DB, hotel *models.Hotel) error {
	hotel.IsApproved = false
	hotel.ApprovedBy = nil
	hotel.ApprovedAt = nil
	if err := tx.Model(hotel).Select("is_approved", "approved_by", "approved_at").Updates(hotel).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không lưu được trạng thái duyệt", err)
	}
	return nil
}

func (s *InventoryService) ensureHotelExists(tx *gorm.DB, hotelID uint) error {
	var count int64
	if err := tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Count(&count).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được khách sạn", err)
	}
	if count == 0 {
		return errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy khách sạn", errors.ErrHotelNotFound)
	}
	return nil
}
