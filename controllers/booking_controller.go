package controllers

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"hotelbooking/config"
	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/utils"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type BookingController struct {
	db      *gorm.DB
	rdb     *redis.Client
	booking *services.BookingService
}

// NewBookingController tạo instance mới của BookingController
func NewBookingController(db *gorm.DB, rdb *redis.Client, booking *services.BookingService) *BookingController {
	return &BookingController{db: db, rdb: rdb, booking: booking}
}

// ConvertDateToISOFormat chuyển chuỗi ngày dd/mm/yyyy thành time.Time
func ConvertDateToISOFormat(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateLayout, dateStr)
}

func convertToBookingResponse(booking *models.Booking) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID: booking.ID,
		Hotel: dto.BookingHotelResponse{
			ID:            booking.Hotel.ID,
			Type:          booking.Hotel.Type,
			Name:          booking.Hotel.Name,
			Location:      booking.Hotel.Location,
			PricePerNight: booking.Hotel.PricePerNight,
		},
		GuestName:       booking.GuestName,
		GuestPhone:      booking.GuestPhone,
		GuestEmail:      booking.GuestEmail,
		GuestCount:      booking.GuestCount,
		SpecialRequests: booking.SpecialRequests,
		CheckInDate:     booking.CheckInDate.Format(constants.DateLayout),
		CheckOutDate:    booking.CheckOutDate.Format(constants.DateLayout),
		Nights:          booking.Nights(),
		TotalPrice:      booking.TotalPrice,
		Status:          booking.Status,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}

	if booking.Room != nil {
		resp.Room = &dto.BookingRoomResponse{
			ID:            booking.Room.RoomId,
			HotelID:       booking.Room.HotelID,
			RoomNumber:    booking.Room.RoomNumber,
			PricePerNight: booking.Room.PricePerNight,
		}
	}
	if booking.Customer != nil {
		actor := convertToActorResponse(*booking.Customer)
		resp.Customer = &actor
	}
	return resp
}

// bookingCacheKeys liệt kê các key cache bị cũ khi booking thay đổi:
// danh sách khách sạn, danh sách booking của khách đặt và của chủ
// khách sạn.
func bookingCacheKeys(booking *models.Booking) []string {
	keys := []string{hotelsCacheKey, fmt.Sprintf("bookings:all:user:%d", booking.Hotel.OwnerID)}
	if booking.CustomerID != nil {
		keys = append(keys, fmt.Sprintf("bookings:all:user:%d", *booking.CustomerID))
	}
	return keys
}

func (ctrl *BookingController) invalidateBookingCache(booking *models.Booking) {
	if ctrl.rdb == nil {
		return
	}
	if err := services.DeleteFromRedis(config.Ctx, ctrl.rdb, bookingCacheKeys(booking)...); err != nil {
		log.Printf("Lỗi khi xóa cache booking: %v", err)
	}
}

// CreateBooking tạo booking mới. Khách vãng lai không cần đăng nhập;
// có token thì booking được gắn với tài khoản.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := validator.ValidateBookingRequest(&req); err != nil {
		response.FromError(c, err)
		return
	}

	checkIn, err := ConvertDateToISOFormat(req.CheckInDate)
	if err != nil {
		response.BadRequest(c, "Ngày nhận phòng không hợp lệ")
		return
	}
	checkOut, err := ConvertDateToISOFormat(req.CheckOutDate)
	if err != nil {
		response.BadRequest(c, "Ngày trả phòng không hợp lệ")
		return
	}

	var customerID *uint
	if id := c.GetUint("userID"); id != 0 {
		customerID = &id
	}

	booking, appErr := ctrl.booking.CreateBooking(services.CreateBookingInput{
		HotelID:         req.HotelID,
		RoomID:          req.RoomID,
		CustomerID:      customerID,
		GuestName:       req.GuestName,
		GuestPhone:      req.GuestPhone,
		GuestEmail:      req.GuestEmail,
		WhatsAppNumber:  req.WhatsAppNumber,
		GuestCount:      req.GuestCount,
		SpecialRequests: req.SpecialRequests,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
	})
	if appErr != nil {
		response.FromError(c, appErr)
		return
	}

	bookingResponse := convertToBookingResponse(booking)

	if booking.GuestEmail != "" {
		if err := services.SendBookingEmail(booking.GuestEmail, booking.ID, booking.TotalPrice,
			bookingResponse.CheckInDate, bookingResponse.CheckOutDate); err != nil {
			utils.LogError("Gửi email xác nhận không thành công: %v", err)
		}
	}

	ctrl.invalidateBookingCache(booking)
	response.Success(c, bookingResponse)
}

// CancelBooking hủy booking. Chỉ khách đặt, chủ khách sạn hoặc super
// admin được hủy; booking đã hủy thì trả lỗi, không đổi state.
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	userID := c.GetUint("userID")
	userRole, _ := c.Get("userRole")
	role, _ := userRole.(int)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID booking không hợp lệ")
		return
	}

	booking, appErr := ctrl.booking.CancelBooking(uint(bookingID), userID, role)
	if appErr != nil {
		response.FromError(c, appErr)
		return
	}

	ctrl.invalidateBookingCache(booking)
	response.Success(c, convertToBookingResponse(booking))
}

// GetBookings danh sách booking theo quyền: khách thấy booking của mình,
// chủ thấy booking các khách sạn mình sở hữu, super admin thấy tất cả.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	userID := c.GetUint("userID")
	userRole, _ := c.Get("userRole")
	role, _ := userRole.(int)

	cacheKey := fmt.Sprintf("bookings:all:user:%d", userID)

	var allBookings []models.Booking
	if ctrl.rdb != nil {
		if err := services.GetFromRedis(config.Ctx, ctrl.rdb, cacheKey, &allBookings); err != nil {
			log.Printf("Lỗi khi đọc cache booking: %v", err)
		}
	}

	if len(allBookings) == 0 {
		baseTx := ctrl.db.Model(&models.Booking{}).
			Preload("Hotel").
			Preload("Room").
			Preload("Customer")

		switch role {
		case constants.RoleHotelAdmin:
			baseTx = baseTx.Where("bookings.hotel_id IN (?)",
				ctrl.db.Model(&models.Hotel{}).Select("id").Where("owner_id = ?", userID))
		case constants.RoleSuperAdmin:
			// thấy tất cả
		default:
			baseTx = baseTx.Where("customer_id = ?", userID)
		}

		if err := baseTx.Find(&allBookings).Error; err != nil {
			response.ServerError(c)
			return
		}

		if ctrl.rdb != nil && len(allBookings) > 0 {
			if err := services.SetToRedis(config.Ctx, ctrl.rdb, cacheKey, allBookings, 10*time.Minute); err != nil {
				log.Printf("Lỗi khi lưu cache booking: %v", err)
			}
		}
	}

	page := 0
	limit := 10
	if parsed, err := strconv.Atoi(c.Query("page")); err == nil && parsed >= 0 {
		page = parsed
	}
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil && parsed > 0 {
		limit = parsed
	}
	statusFilter := c.Query("status")

	filtered := make([]models.Booking, 0, len(allBookings))
	for _, booking := range allBookings {
		if statusFilter != "" {
			parsedStatus, err := strconv.Atoi(statusFilter)
			if err == nil && booking.Status != parsedStatus {
				continue
			}
		}
		filtered = append(filtered, booking)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
	})

	total := len(filtered)
	start := page * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	bookingsResponse := make([]dto.BookingResponse, 0, end-start)
	for i := range filtered[start:end] {
		b := filtered[start:end][i]
		bookingsResponse = append(bookingsResponse, convertToBookingResponse(&b))
	}

	response.SuccessWithPagination(c, bookingsResponse, page, limit, total)
}

// GetBookingDetail chi tiết một booking, cùng quyền xem như danh sách
func (ctrl *BookingController) GetBookingDetail(c *gin.Context) {
	userID := c.GetUint("userID")
	userRole, _ := c.Get("userRole")
	role, _ := userRole.(int)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID booking không hợp lệ")
		return
	}

	booking, appErr := ctrl.booking.GetBookingByID(uint(bookingID))
	if appErr != nil {
		response.FromError(c, appErr)
		return
	}

	canView := role == constants.RoleSuperAdmin ||
		(role == constants.RoleHotelAdmin && booking.Hotel.OwnerID == userID) ||
		(booking.CustomerID != nil && *booking.CustomerID == userID)
	if !canView {
		response.Forbidden(c)
		return
	}

	response.Success(c, convertToBookingResponse(booking))
}
