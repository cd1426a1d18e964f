package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringList lưu danh sách chuỗi ngắn (tiện ích, nội thất...) dưới dạng
// chuỗi nối bằng dấu phẩy trong database, trong bộ nhớ là []string.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	return strings.Join(l, ","), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("không thể scan kiểu %T vào StringList", value)
	}

	if raw == "" {
		*l = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}
