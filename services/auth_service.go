package services

import (
	"fmt"
	"net/smtp"
	"os"
	"time"

	"hotelbooking/errors"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword băm mật khẩu bằng bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword so sánh mật khẩu với hash đã lưu
func CheckPassword(hashed, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return errors.NewAppError(errors.ErrCodeUnauthorized, "Email hoặc mật khẩu không đúng", err)
	}
	return nil
}

// GenerateToken tạo JWT chứa userID và role trong claim "userinfo"
func GenerateToken(userID uint, role int) (string, error) {
	claims := jwt.MapClaims{
		"userinfo": map[string]interface{}{
			"userid": userID,
			"role":   role,
		},
		"exp": time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}

// SendBookingEmail gửi email xác nhận đặt phòng cho khách
func SendBookingEmail(to string, bookingID uint, totalPrice float64, checkIn, checkOut string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	if from == "" || host == "" {
		return fmt.Errorf("smtp chưa được cấu hình")
	}
	if port == "" {
		port = "587"
	}

	subject := fmt.Sprintf("Xác nhận đặt phòng #%d", bookingID)
	body := fmt.Sprintf(
		"Đơn đặt phòng #%d của bạn đã được xác nhận.\nNhận phòng: %s\nTrả phòng: %s\nTổng tiền: %.0f VND\n",
		bookingID, checkIn, checkOut, totalPrice)
	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body)

	auth := smtp.PlainAuth("", from, password, host)
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg)
}
