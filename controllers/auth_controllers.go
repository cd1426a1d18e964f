package controllers

import (
	"context"
	stderrors "errors"
	"os"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

type AuthController struct {
	db *gorm.DB
}

// NewAuthController tạo instance mới của AuthController
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

func convertToActorResponse(user models.User) dto.ActorResponse {
	return dto.ActorResponse{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}
}

// Register đăng ký tài khoản khách hoặc chủ khách sạn
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if req.Role != constants.RoleCustomer && req.Role != constants.RoleHotelAdmin {
		response.BadRequest(c, "Role không hợp lệ")
		return
	}

	user := models.User{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		Status:      constants.UserStatusActive,
	}

	if err := validator.ValidateUser(&user); err != nil {
		response.FromError(c, err)
		return
	}

	var count int64
	if err := ctrl.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		response.ServerError(c)
		return
	}
	if count > 0 {
		response.Conflict(c, "Email đã được đăng ký")
		return
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		response.ServerError(c)
		return
	}
	user.Password = hashed

	if err := ctrl.db.Create(&user).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, convertToActorResponse(user))
}

// Login đăng nhập bằng email/mật khẩu
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var user models.User
	if err := ctrl.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			response.Unauthorized(c)
			return
		}
		response.ServerError(c)
		return
	}

	if user.Status != constants.UserStatusActive {
		response.Forbidden(c)
		return
	}

	if err := services.CheckPassword(user.Password, req.Password); err != nil {
		response.Unauthorized(c)
		return
	}

	token, err := services.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		Token: token,
		User:  convertToActorResponse(user),
	})
}

// AuthGoogle đăng nhập bằng Google ID token
func (ctrl *AuthController) AuthGoogle(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	payload, err := verifyGoogleIDToken(req.IDToken)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		response.Unauthorized(c)
		return
	}

	var user models.User
	err = ctrl.db.Where("email = ?", email).First(&user).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			FullName: name,
			Email:    email,
			Role:     constants.RoleCustomer,
			Status:   constants.UserStatusActive,
		}
		if err := ctrl.db.Create(&user).Error; err != nil {
			response.ServerError(c)
			return
		}
	} else if err != nil {
		response.ServerError(c)
		return
	}

	token, err := services.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		Token: token,
		User:  convertToActorResponse(user),
	})
}

// GetProfile lấy thông tin tài khoản hiện tại
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := ctrl.db.First(&user, userID).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, convertToActorResponse(user))
}

func verifyGoogleIDToken(tokenId string) (*idtoken.Payload, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	return idtoken.Validate(context.Background(), tokenId, clientID)
}
