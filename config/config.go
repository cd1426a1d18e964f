package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig các policy flag của ứng dụng
type AppConfig struct {
	// ReapproveOnEdit true: chủ sửa thông tin khách sạn sẽ phải duyệt lại.
	// Mặc định false, chỉnh qua biến môi trường REAPPROVE_ON_EDIT.
	ReapproveOnEdit bool

	// WhatsAppGatewayURL endpoint gửi tin WhatsApp. Để trống thì chỉ ghi log.
	WhatsAppGatewayURL string
}

var App AppConfig

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// LoadAppConfig nạp các policy flag từ biến môi trường
func LoadAppConfig() {
	App = AppConfig{
		ReapproveOnEdit:    getBoolEnv("REAPPROVE_ON_EDIT", false),
		WhatsAppGatewayURL: os.Getenv("WHATSAPP_GATEWAY_URL"),
	}
}

func getBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("Warning: giá trị %s không hợp lệ (%q), dùng mặc định %v", key, val, fallback)
		return fallback
	}
	return parsed
}
