package dto

// RegisterRequest request đăng ký tài khoản
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Role        int    `json:"role"`
}

// LoginRequest request đăng nhập
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest request đăng nhập bằng Google
type GoogleAuthRequest struct {
	IDToken string `json:"idToken"`
}

// LoginResponse response đăng nhập
type LoginResponse struct {
	Token string        `json:"token"`
	User  ActorResponse `json:"user"`
}
