package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// WhatsAppClient gửi tin nhắn qua một WhatsApp gateway HTTP. Không cấu
// hình URL thì chỉ ghi log, tiện cho môi trường dev.
type WhatsAppClient struct {
	gatewayURL string
	client     *http.Client
}

// NewWhatsAppClient tạo instance mới của WhatsAppClient
func NewWhatsAppClient(gatewayURL string) *WhatsAppClient {
	return &WhatsAppClient{
		gatewayURL: gatewayURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send gửi một tin nhắn văn bản đến một số WhatsApp
func (c *WhatsAppClient) Send(to, message string) error {
	if c.gatewayURL == "" {
		log.Printf("[WHATSAPP] (chưa cấu hình gateway) to=%s\n%s", to, message)
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"to":      to,
		"message": message,
	})
	if err != nil {
		return err
	}

	resp, err := c.client.Post(c.gatewayURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway trả về status %d", resp.StatusCode)
	}
	return nil
}
