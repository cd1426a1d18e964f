package controllers

import (
	"strconv"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CalendarController struct {
	db       *gorm.DB
	calendar *services.CalendarService
}

// NewCalendarController tạo instance mới của CalendarController
func NewCalendarController(db *gorm.DB, calendar *services.CalendarService) *CalendarController {
	return &CalendarController{db: db, calendar: calendar}
}

// GetRoomCalendar sổ lịch của một phòng trong khoảng ngày
func (ctrl *CalendarController) GetRoomCalendar(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Query("roomId"))
	if err != nil {
		response.BadRequest(c, "ID phòng không hợp lệ")
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

	entries, appErr := ctrl.calendar.RangeEntries(uint(roomID), fromDate, toDate)
	if appErr != nil {
		response.FromError(c, appErr)
		return
	}

	entriesResponse := make([]dto.CalendarEntryResponse, 0, len(entries))
	for _, entry := range entries {
		entriesResponse = append(entriesResponse, dto.CalendarEntryResponse{
			RoomID:    entry.RoomID,
			Date:      entry.Date.Format(constants.DateLayout),
			Status:    entry.Status,
			BookingID: entry.BookingID,
			Notes:     entry.Notes,
		})
	}

	response.Success(c, entriesResponse)
}

// SetCalendarStatus chủ/admin khóa, mở hoặc đánh dấu bảo trì một ngày của
// phòng, độc lập với booking. Ngày đang gắn booking còn hiệu lực thì phải
// hủy booking trước.
func (ctrl *CalendarController) SetCalendarStatus(c *gin.Context) {
	userID := c.GetUint("userID")
	userRole, _ := c.Get("userRole")
	role, _ := userRole.(int)

	var req dto.CalendarOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RoomID == 0 {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	date, err := ConvertDateToISOFormat(req.Date)
	if err != nil {
		response.BadRequest(c, "Sai định dạng ngày")
		return
	}

	var room models.Room
	if err := ctrl.db.Preload("Hotel").First(&room, "room_id = ?", req.RoomID).Error; err != nil {
		response.NotFound(c)
		return
	}
	if role != constants.RoleSuperAdmin && room.Hotel.OwnerID != userID {
		response.Forbidden(c)
		return
	}

	if appErr := ctrl.calendar.SetManualStatus(req.RoomID, date, req.Status, userID, req.Notes); appErr != nil {
		response.FromError(c, appErr)
		return
	}

	response.Success(c, dto.CalendarEntryResponse{
		RoomID: req.RoomID,
		Date:   req.Date,
		Status: req.Status,
		Notes:  req.Notes,
	})
}
