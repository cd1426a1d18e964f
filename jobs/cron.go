package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// BookingMaintainer định nghĩa interface cho việc bảo trì booking hằng ngày
type BookingMaintainer interface {
	CompleteDueBookings(now time.Time) (int64, error)
	SendCheckInReminders(date time.Time) (int, error)
}

var bookingMaintainer BookingMaintainer

// SetBookingMaintainer thiết lập implementation cho BookingMaintainer
func SetBookingMaintainer(maintainer BookingMaintainer) {
	bookingMaintainer = maintainer
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Cron job chạy lúc 0h mỗi ngày
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		if bookingMaintainer == nil {
			log.Printf("Lỗi: BookingMaintainer chưa được thiết lập")
			return
		}

		done, err := bookingMaintainer.CompleteDueBookings(now)
		if err != nil {
			log.Printf("Lỗi khi chuyển booking sang hoàn thành: %v", err)
		} else if done > 0 {
			log.Printf("Đã chuyển %d booking sang hoàn thành lúc: %v", done, now)
		}

		sent, err := bookingMaintainer.SendCheckInReminders(now.AddDate(0, 0, 1))
		if err != nil {
			log.Printf("Lỗi khi gửi nhắc lịch nhận phòng: %v", err)
		} else if sent > 0 {
			log.Printf("Đã gửi %d nhắc lịch nhận phòng cho ngày mai", sent)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
