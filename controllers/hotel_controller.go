package controllers

import (
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hotelbooking/config"
	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const hotelsCacheKey = "hotels:approved"

type HotelController struct {
	db      *gorm.DB
	rdb     *redis.Client
	booking *services.BookingService
}

// NewHotelController tạo instance mới của HotelController
func NewHotelController(db *gorm.DB, rdb *redis.Client, booking *services.BookingService) *HotelController {
	return &HotelController{db: db, rdb: rdb, booking: booking}
}

func convertToHotelResponse(hotel models.Hotel) dto.HotelResponse {
	return dto.HotelResponse{
		ID:             hotel.ID,
		Type:           hotel.Type,
		Name:           hotel.Name,
		Location:       hotel.Location,
		Description:    hotel.Description,
		PricePerNight:  hotel.PricePerNight,
		TotalRooms:     hotel.TotalRooms,
		AvailableRooms: hotel.AvailableRooms,
		Amenities:      hotel.Amenities,
		IsApproved:     hotel.IsApproved,
	}
}

func (ctrl *HotelController) invalidateHotelCache() {
	if ctrl.rdb == nil {
		return
	}
	if err := services.DeleteFromRedis(config.Ctx, ctrl.rdb, hotelsCacheKey); err != nil {
		log.Printf("Lỗi khi xóa cache khách sạn: %v", err)
	}
}

// GetHotels danh sách khách sạn đã duyệt cho khách, có cache, lọc và
// tìm kiếm gần đúng.
func (ctrl *HotelController) GetHotels(c *gin.Context) {
	var allHotels []models.Hotel

	if ctrl.rdb != nil {
		if err := services.GetFromRedis(config.Ctx, ctrl.rdb, hotelsCacheKey, &allHotels); err != nil {
			log.Printf("Lỗi khi đọc cache khách sạn: %v", err)
		}
	}

	if len(allHotels) == 0 {
		if err := ctrl.db.Where("is_approved = ?", true).Find(&allHotels).Error; err != nil {
			response.ServerError(c)
			return
		}
		if ctrl.rdb != nil && len(allHotels) > 0 {
			if err := services.SetToRedis(config.Ctx, ctrl.rdb, hotelsCacheKey, allHotels, 10*time.Minute); err != nil {
				log.Printf("Lỗi khi lưu cache khách sạn: %v", err)
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

	nameFilter := c.Query("name")
	locationFilter := c.Query("location")
	typeFilter := c.Query("type")
	searchQuery := c.Query("search")

	filtered := make([]models.Hotel, 0)
	for _, hotel := range allHotels {
		if nameFilter != "" {
			decodedName, _ := url.QueryUnescape(nameFilter)
			if !strings.Contains(strings.ToLower(hotel.Name), strings.ToLower(decodedName)) {
				continue
			}
		}
		if locationFilter != "" {
			decodedLocation, _ := url.QueryUnescape(locationFilter)
			if !strings.Contains(strings.ToLower(hotel.Location), strings.ToLower(decodedLocation)) {
				continue
			}
		}
		if typeFilter != "" {
			parsedType, err := strconv.Atoi(typeFilter)
			if err == nil && hotel.Type != parsedType {
				continue
			}
		}
		filtered = append(filtered, hotel)
	}

	if searchQuery != "" {
		decodedQuery, _ := url.QueryUnescape(searchQuery)
		scored := services.SearchHotels(decodedQuery, filtered)
		filtered = filtered[:0]
		for _, s := range scored {
			filtered = append(filtered, s.Hotel)
		}
	}

	total := len(filtered)
	start := page * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	hotelsResponse := make([]dto.HotelResponse, 0, end-start)
	for _, hotel := range filtered[start:end] {
		hotelsResponse = append(hotelsResponse, convertToHotelResponse(hotel))
	}

	response.SuccessWithPagination(c, hotelsResponse, page, limit, total)
}

// GetHotelDetail chi tiết một khách sạn. Khách vãng lai chỉ xem được
// khách sạn đã duyệt; chủ và super admin xem được cả khi chờ duyệt.
func (ctrl *HotelController) GetHotelDetail(c *gin.Context) {
	hotelID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID khách sạn không hợp lệ")
		return
	}

	var hotel models.Hotel
	if err := ctrl.db.Preload("Rooms").First(&hotel, hotelID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if !hotel.IsApproved {
		userID := c.GetUint("userID")
		userRole, _ := c.Get("userRole")
		role, _ := userRole.(int)
		if role != constants.RoleSuperAdmin && hotel.OwnerID != userID {
			response.NotFound(c)
			return
		}
	}

	rooms := make([]dto.RoomResponse, 0, len(hotel.Rooms))
	for _, room := range hotel.Rooms {
		rooms = append(rooms, convertToRoomResponse(room))
	}

	response.Success(c, dto.HotelDetailResponse{
		HotelResponse: convertToHotelResponse(hotel),
		ContactNumber: hotel.ContactNumber,
		OwnerEmail:    hotel.OwnerEmail,
		ApprovedBy:    hotel.ApprovedBy,
		ApprovedAt:    hotel.ApprovedAt,
		Rooms:         rooms,
	})
}

// CreateHotel chủ đăng ký khách sạn mới, vào trạng thái chờ duyệt
func (ctrl *HotelController) CreateHotel(c *gin.Context) {
	userID := c.GetUint("userID")

	var req dto.HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	hotel := models.Hotel{
		OwnerID:        userID,
		Type:           req.Type,
		Name:           req.Name,
		Location:       req.Location,
		Description:    req.Description,
		ContactNumber:  req.ContactNumber,
		OwnerEmail:     req.OwnerEmail,
		WhatsAppNumber: req.WhatsAppNumber,
		PricePerNight:  req.PricePerNight,
		TotalRooms:     req.TotalRooms,
		AvailableRooms: req.TotalRooms,
		Amenities:      req.Amenities,
		IsApproved:     false,
	}

	if err := validator.ValidateHotel(&hotel); err != nil {
		response.FromError(c, err)
		return
	}

	if err := ctrl.db.Create(&hotel).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctrl.invalidateHotelCache()
	response.Success(c, convertToHotelResponse(hotel))
}

// UpdateHotel chủ (hoặc super admin) cập nhật thông tin khách sạn.
// Policy REAPPROVE_ON_EDIT bật thì bản sửa phải duyệt lại.
func (ctrl *HotelController) UpdateHotel(c *gin.Context) {
	userID := c.GetUint("userID")
	userRole, _ := c.Get("userRole")
	role, _ := userRole.(int)

	var req dto.HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var hotel models.Hotel
	if err := ctrl.db.First(&hotel, req.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if role != constants.RoleSuperAdmin && hotel.OwnerID != userID {
		response.Forbidden(c)
		return
	}

	prevTotal := hotel.TotalRooms

	hotel.Type = req.Type
	hotel.Name = req.Name
	hotel.Location = req.Location
	hotel.Description = req.Description
	hotel.ContactNumber = req.ContactNumber
	hotel.OwnerEmail = req.OwnerEmail
	hotel.WhatsAppNumber = req.WhatsAppNumber
	hotel.PricePerNight = req.PricePerNight
	hotel.TotalRooms = req.TotalRooms
	hotel.Amenities = req.Amenities

	if err := validator.ValidateHotel(&hotel); err != nil {
		response.FromError(c, err)
		return
	}

	err := ctrl.db.Transaction(func(tx *gorm.DB) error {
		if req.TotalRooms != prevTotal {
			// Đổi tổng số phòng thì tính lại số phòng trống từ số booking
			// còn hiệu lực, giữ invariant available + confirmed = total.
			var consumed int64
			if err := tx.Model(&models.Booking{}).
				Where("hotel_id = ? AND status = ?", hotel.ID, constants.BookingStatusConfirmed).
				Count(&consumed).Error; err != nil {
				return err
			}
			hotel.AvailableRooms = req.TotalRooms - int(consumed)
			if hotel.AvailableRooms < 0 {
				hotel.AvailableRooms = 0
			}
		}

		if config.App.ReapproveOnEdit && role != constants.RoleSuperAdmin {
			hotel.IsApproved = false
			hotel.ApprovedBy = nil
			hotel.ApprovedAt = nil
		}

		return tx.Save(&hotel).Error
	})
	if err != nil {
		response.ServerError(c)
		return
	}

	ctrl.invalidateHotelCache()
	response.Success(c, convertToHotelResponse(hotel))
}

// ApproveHotel super admin duyệt một khách sạn chờ duyệt
func (ctrl *HotelController) ApproveHotel(c *gin.Context) {
	approverID := c.GetUint("userID")

	hotelID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID khách sạn không hợp lệ")
		return
	}

	hotel, appErr := ctrl.booking.Inventory().ApproveHotel(uint(hotelID), approverID, time.Now())
	if appErr != nil {
		response.FromError(c, appErr)
		return
	}

	ctrl.invalidateHotelCache()
	response.Success(c, convertToHotelResponse(*hotel))
}

// GetHotelAvailability lưới tình trạng từng phòng theo ngày của khách sạn
func (ctrl *HotelController) GetHotelAvailability(c *gin.Context) {
	hotelID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID khách sạn không hợp lệ")
		return
	}

	fromDate, err := ConvertDateToISOFormat(c.Query("fromDate"))
	if err != nil {
		response.BadRequest(c, "Sai định dạng fromDate")
		return
	}
	toDate, err := ConvertDateToISOFormat(c.Query("toDate"))
	if err != nil {
		response.BadRequest(c, "Sai định dạng toDate")
		return
	}

	grid, appErr := ctrl.booking.GetHotelAvailability(uint(hotelID), fromDate, toDate)
	if appErr != nil {
		response.FromError(c, appErr)
		return
	}

	response.Success(c, grid)
}
