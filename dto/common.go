package dto

// ActorResponse thông tin rút gọn của người thao tác
type ActorResponse struct {
	ID          uint   `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}
