package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/middlewares"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
)

const otpExpiresMinutes = 5

type registerInput struct {
	Name     string          `json:"name" binding:"required"`
	Mobile   string          `json:"mobile" binding:"required"`
	Email    string          `json:"email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role"`
}

func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := utils.ValidatePhoneNumber(input.Mobile, utils.CountryCode); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mobile number"})
		return
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	db := config.GetDB()
	if _, err := models.GetUserByMobile(db, input.Mobile); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mobile already registered"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	role := input.Role
	if role == "" {
		role = models.UserRoleDriver
	}
	user := models.User{
		Name:         input.Name,
		Mobile:       input.Mobile,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         role,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.JwtGenerate(user.Id, string(user.Role), string(user.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

type loginInput struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the password. Admins with a mail address on file get an OTP
// challenge (completed via VerifyOtp); everyone else gets a token directly.
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()
	logger := config.GetLogger()

	user, err := models.GetUserByMobile(db, input.Mobile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		return
	}
	if err := utils.ComparePassword(user.PasswordHash, input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid password"})
		return
	}
	if user.Status != models.UserStatusActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "inactive user"})
		return
	}

	if user.Role == models.UserRoleAdmin && user.Email != "" && config.GetRedisDB() != nil {
		otp, err := utils.GenerateOtp(6)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := config.SetRedisValue(otpKey(user.Id), otp, otpExpiresMinutes*time.Minute); err != nil {
			respondError(c, err)
			return
		}
		subject, body := utils.BuildOtpEmail(otp, otpExpiresMinutes)
		if err := utils.SendEmail(user.Email, subject, body); err != nil {
			config.LogError(logger, "controllers", "Login", "SendEmail", user.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"otp_required": true, "user_id": user.Id})
		return
	}

	token, err := utils.JwtGenerate(user.Id, string(user.Role), string(user.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type verifyOtpInput struct {
	UserId string `json:"user_id" binding:"required"`
	Otp    string `json:"otp" binding:"required"`
}

func VerifyOtp(c *gin.Context) {
	var input verifyOtpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	stored, found, err := config.GetRedisValue(otpKey(input.UserId))
	if err != nil {
		respondError(c, err)
		return
	}
	if !found || strings.TrimSpace(input.Otp) != stored {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired OTP"})
		return
	}
	_ = config.RemoveRedisKey(otpKey(input.UserId))

	user, err := models.GetUserById(config.GetDB(), input.UserId)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := utils.JwtGenerate(user.Id, string(user.Role), string(user.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func GetMe(c *gin.Context) {
	claim := middlewares.CtxValue(c.Request.Context())
	if claim == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, err := models.GetUserById(config.GetDB(), claim.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func otpKey(userId string) string {
	return "otp:" + userId
}
