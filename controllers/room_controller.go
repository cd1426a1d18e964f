package controllers

import (
	"strconv"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RoomController struct {
	db        *gorm.DB
	inventory *services.InventoryService
}

// NewRoomController tạo instance mới của RoomController
func NewRoomController(db *gorm.DB, inventory *services.InventoryService) *RoomController {
	return &RoomController{db: db, inventory: inventory}
}

func convertToRoomResponse(room models.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:            room.RoomId,
		HotelID:       room.HotelID,
		RoomNumber:    room.RoomNumber,
		RoomType:      room.RoomType,
		Capacity:      room.Capacity,
		PricePerNight: room.PricePerNight,
		IsAvailable:   room.IsAvailable,
		Features:      room.Features,
	}
}

// ownsHotel kiểm tra actor có phải chủ khách sạn không (super admin luôn qua)
func (ctrl *RoomController) ownsHotel(c *gin.Context, hotelID uint) (*models.Hotel, bool) {
	userID := c.GetUint("userID")
	userRole, _ := c.Get("userRole")
	role, _ := userRole.(int)

	var hotel models.Hotel
	if err := ctrl.db.First(&hotel, hotelID).Error; err != nil {
		response.NotFound(c)
		return nil, false
	}

	if role != constants.RoleSuperAdmin && hotel.OwnerID != userID {
		response.Forbidden(c)
		return nil, false
	}
	return &hotel, true
}

// GetRooms danh sách phòng của một khách sạn
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	hotelID, err := strconv.Atoi(c.Query("hotelId"))
	if err != nil {
		response.BadRequest(c, "ID khách sạn không hợp lệ")
		return
	}

	var rooms []models.Room
	if err := ctrl.db.Where("hotel_id = ?", hotelID).Order("room_number").Find(&rooms).Error; err != nil {
		response.ServerError(c)
		return
	}

	roomsResponse := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		roomsResponse = append(roomsResponse, convertToRoomResponse(room))
	}

	response.Success(c, roomsResponse)
}

// CreateRoom chủ thêm phòng vào khách sạn của mình
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if _, ok := ctrl.ownsHotel(c, req.HotelID); !ok {
		return
	}

	room := models.Room{
		HotelID:       req.HotelID,
		RoomNumber:    req.RoomNumber,
		RoomType:      req.RoomType,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		IsAvailable:   true,
		Features:      req.Features,
	}

	if err := validator.ValidateRoom(&room); err != nil {
		response.FromError(c, err)
		return
	}

	if err := ctrl.db.Create(&room).Error; err != nil {
		response.Conflict(c, "Số phòng đã tồn tại trong khách sạn")
		return
	}

	response.Success(c, convertToRoomResponse(room))
}

// UpdateRoom chủ cập nhật thông tin phòng
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var room models.Room
	if err := ctrl.db.First(&room, "room_id = ?", req.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if _, ok := ctrl.ownsHotel(c, room.HotelID); !ok {
		return
	}

	room.RoomNumber = req.RoomNumber
	room.RoomType = req.RoomType
	room.Capacity = req.Capacity
	room.PricePerNight = req.PricePerNight
	room.Features = req.Features

	if err := validator.ValidateRoom(&room); err != nil {
		response.FromError(c, err)
		return
	}

	if err := ctrl.db.Save(&room).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, convertToRoomResponse(room))
}

// ChangeRoomFlag bật/tắt cờ tạm ngưng bán của phòng. Cờ này chỉ dành cho
// việc chủ rút phòng khỏi kệ (bảo trì); booking không đụng vào nó.
func (ctrl *RoomController) ChangeRoomFlag(c *gin.Context) {
	var req dto.RoomFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RoomID == 0 {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var room models.Room
	if err := ctrl.db.First(&room, "room_id = ?", req.RoomID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if _, ok := ctrl.ownsHotel(c, room.HotelID); !ok {
		return
	}

	var err error
	if req.IsAvailable {
		err = ctrl.inventory.MarkRoomAvailable(ctrl.db, req.RoomID)
	} else {
		err = ctrl.inventory.MarkRoomUnavailable(ctrl.db, req.RoomID)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}

	room.IsAvailable = req.IsAvailable
	response.Success(c, convertToRoomResponse(room))
}
