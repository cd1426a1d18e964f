package notification

import (
	"encoding/json"
	"fmt"

	"hotelbooking/constants"
	"hotelbooking/models"

	"github.com/olahol/melody"
)

// Các loại sự kiện booking
const (
	EventBookingCreated   = "BookingCreated"
	EventBookingCancelled = "BookingCancelled"
	EventCheckInReminder  = "CheckInReminder"
)

// Contact thông tin liên hệ của khách
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// Event một sự kiện booking gửi ra ngoài
type Event struct {
	Type    string          `json:"type"`
	Booking *models.Booking `json:"booking"`
	Hotel   *models.Hotel   `json:"hotel"`
	Contact Contact         `json:"contact"`
}

// Notifier nhận sự kiện booking. Gửi là best-effort: caller ghi log lỗi
// và không bao giờ roll back booking vì thông báo thất bại.
type Notifier interface {
	Notify(event Event) error
}

// Gateway ghép WhatsApp và websocket dashboard thành một notifier
type Gateway struct {
	whatsapp *WhatsAppClient
	m        *melody.Melody
}

// NewGateway tạo instance mới của Gateway
func NewGateway(whatsapp *WhatsAppClient, m *melody.Melody) *Gateway {
	return &Gateway{whatsapp: whatsapp, m: m}
}

func (g *Gateway) Notify(event Event) error {
	var firstErr error

	if g.whatsapp != nil {
		guestTo := event.Contact.WhatsApp
		if guestTo == "" {
			guestTo = event.Contact.Phone
		}
		if guestTo != "" {
			if err := g.whatsapp.Send(guestTo, buildGuestMessage(event)); err != nil && firstErr == nil {
				firstErr = err
			}
		}

		ownerTo := event.Hotel.WhatsAppNumber
		if ownerTo == "" {
			ownerTo = event.Hotel.ContactNumber
		}
		if ownerTo != "" && event.Type != EventCheckInReminder {
			if err := g.whatsapp.Send(ownerTo, buildOwnerMessage(event)); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	if g.m != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			if err := g.m.Broadcast(payload); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func buildGuestMessage(event Event) string {
	b := event.Booking
	checkIn := b.CheckInDate.Format(constants.DateLayout)
	checkOut := b.CheckOutDate.Format(constants.DateLayout)

	switch event.Type {
	case EventBookingCreated:
		return fmt.Sprintf(
			"🏨 Xác nhận đặt phòng #%d\nKhách sạn: %s\nNhận phòng: %s\nTrả phòng: %s\nSố đêm: %d\nTổng tiền: %.0f VND\nCảm ơn %s đã đặt phòng!",
			b.ID, event.Hotel.Name, checkIn, checkOut, b.Nights(), b.TotalPrice, event.Contact.Name)
	case EventBookingCancelled:
		return fmt.Sprintf(
			"❌ Booking #%d tại %s (nhận phòng %s) đã được hủy.",
			b.ID, event.Hotel.Name, checkIn)
	case EventCheckInReminder:
		return fmt.Sprintf(
			"⏰ Nhắc lịch: booking #%d tại %s nhận phòng ngày %s. Hẹn gặp %s!",
			b.ID, event.Hotel.Name, checkIn, event.Contact.Name)
	default:
		return fmt.Sprintf("Booking #%d: %s", b.ID, event.Type)
	}
}

func buildOwnerMessage(event Event) string {
	b := event.Booking
	checkIn := b.CheckInDate.Format(constants.DateLayout)
	checkOut := b.CheckOutDate.Format(constants.DateLayout)

	switch event.Type {
	case EventBookingCreated:
		return fmt.Sprintf(
			"🔔 Booking mới #%d tại %s\nKhách: %s (%s)\nNhận phòng: %s\nTrả phòng: %s\nTổng tiền: %.0f VND",
			b.ID, event.Hotel.Name, event.Contact.Name, event.Contact.Phone, checkIn, checkOut, b.TotalPrice)
	case EventBookingCancelled:
		return fmt.Sprintf(
			"🔔 Booking #%d tại %s đã bị hủy (khách %s, nhận phòng %s).",
			b.ID, event.Hotel.Name, event.Contact.Name, checkIn)
	default:
		return fmt.Sprintf("Booking #%d: %s", b.ID, event.Type)
	}
}
