package routes

import (
	"fmt"

	"hotelbooking/config"
	"hotelbooking/controllers"
	middlewares "hotelbooking/middleware"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes gắn toàn bộ route lên router và trả về booking service
// để main wire vào cron jobs
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) *services.BookingService {

	notifier := notification.NewGateway(
		notification.NewWhatsAppClient(config.App.WhatsAppGatewayURL),
		m,
	)
	bookingService := services.NewBookingService(db, notifier, logger.NewDefaultLogger(logger.InfoLevel))

	authController := controllers.NewAuthController(db)
	hotelController := controllers.NewHotelController(db, redisCli, bookingService)
	roomController := controllers.NewRoomController(db, bookingService.Inventory())
	bookingController := controllers.NewBookingController(db, redisCli, bookingService)
	calendarController := controllers.NewCalendarController(db, bookingService.Calendar())

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authController.Register)
	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/google", authController.AuthGoogle)
	v1.GET("/profile", middlewares.AuthMiddleware(0, 1, 2), authController.GetProfile)

	v1.GET("/hotels", middlewares.OptionalAuthMiddleware(), hotelController.GetHotels)
	v1.GET("/hotels/:id", middlewares.OptionalAuthMiddleware(), hotelController.GetHotelDetail)
	v1.POST("/hotels", middlewares.AuthMiddleware(1, 2), hotelController.CreateHotel)
	v1.PUT("/hotels", middlewares.AuthMiddleware(1, 2), hotelController.UpdateHotel)
	v1.PUT("/hotelApprove/:id", middlewares.AuthMiddleware(1), hotelController.ApproveHotel)
	v1.GET("/hotelAvailability/:id", hotelController.GetHotelAvailability)

	v1.GET("/rooms", roomController.GetRooms)
	v1.POST("/rooms", middlewares.AuthMiddleware(1, 2), roomController.CreateRoom)
	v1.PUT("/rooms", middlewares.AuthMiddleware(1, 2), roomController.UpdateRoom)
	v1.PUT("/roomStatus", middlewares.AuthMiddleware(1, 2), roomController.ChangeRoomFlag)

	v1.GET("/calendar", calendarController.GetRoomCalendar)
	v1.PUT("/calendar", middlewares.AuthMiddleware(1, 2), calendarController.SetCalendarStatus)

	v1.POST("/booking", middlewares.OptionalAuthMiddleware(), bookingController.CreateBooking)
	v1.PUT("/bookingCancel/:id", middlewares.AuthMiddleware(0, 1, 2), bookingController.CancelBooking)
	v1.GET("/booking", middlewares.AuthMiddleware(0, 1, 2), bookingController.GetBookings)
	v1.GET("/booking/:id", middlewares.AuthMiddleware(0, 1, 2), bookingController.GetBookingDetail)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler))

	//ws
	v1.GET("/test-broadcast", func(c *gin.Context) {
		message := []byte("Thông báo từ backend: Tin nhắn mới!")
		fmt.Println("Broadcasting message:", string(message))
		m.Broadcast(message)
		c.String(200, "Broadcast message sent!")
	})

	return bookingService
}
