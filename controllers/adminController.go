package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/middlewares"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
)

func CreateDriver(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := utils.ValidatePhoneNumber(input.Mobile, utils.CountryCode); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	db := config.GetDB()
	if _, err := models.GetUserByMobile(db, input.Mobile); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mobile number already registered"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if input.VehicleId != "" {
		if _, err := models.GetVehicleById(db, input.VehicleId); err != nil {
			respondError(c, err)
			return
		}
	}

	driver := models.User{
		Name:         input.Name,
		Mobile:       input.Mobile,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         models.UserRoleDriver,
		Status:       models.UserStatusActive,
		BaseSalary:   input.BaseSalary,
		VehicleId:    input.VehicleId,
	}
	if err := db.Create(&driver).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func ListDrivers(c *gin.Context) {
	drivers, err := models.ListDrivers(config.GetDB())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

func GetDriver(c *gin.Context) {
	driver, err := models.GetDriverById(config.GetDB(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

type updateDriverInput struct {
	Name       *string          `json:"name"`
	Email      *string          `json:"email"`
	Password   *string          `json:"password"`
	BaseSalary *decimal.Decimal `json:"base_salary"`
	VehicleId  *string          `json:"vehicle_id"`
}

func UpdateDriver(c *gin.Context) {
	var input updateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()
	driver, err := models.GetDriverById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email != "" && !utils.IsValidEmail(*input.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
			return
		}
		driver.Email = *input.Email
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		driver.PasswordHash = string(hash)
	}
	if input.BaseSalary != nil {
		driver.BaseSalary = *input.BaseSalary
	}
	if input.VehicleId != nil {
		if *input.VehicleId != "" {
			if _, err := models.GetVehicleById(db, *input.VehicleId); err != nil {
				respondError(c, err)
				return
			}
		}
		driver.VehicleId = *input.VehicleId
	}

	if err := db.Save(driver).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// DeleteDriver removes a driver that has never posted. A driver with ledger
// history is blocked instead, so the applied deltas stay explainable.
func DeleteDriver(c *gin.Context) {
	db := config.GetDB()
	driver, err := models.GetDriverById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var count int64
	if err := db.Model(&models.Transaction{}).Where("driver_id = ?", driver.Id).Count(&count).Error; err != nil {
		respondError(c, err)
		return
	}
	if count > 0 {
		respondError(c, utils.ErrorHasTransactions)
		return
	}

	if err := db.Delete(&models.User{}, "id = ?", driver.Id).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type driverStatusInput struct {
	Status models.UserStatus `json:"status" binding:"required"`
}

// SetDriverStatus blocks or unblocks a driver. A blocked driver keeps the
// history but cannot log in.
func SetDriverStatus(c *gin.Context) {
	var input driverStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	if input.Status != models.UserStatusActive && input.Status != models.UserStatusBlocked {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be ACTIVE or BLOCKED"})
		return
	}

	db := config.GetDB()
	driver, err := models.GetDriverById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	driver.Status = input.Status
	if err := db.Save(driver).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func CreateVehicle(c *gin.Context) {
	var input models.NewVehicle
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	vehicle := models.Vehicle{
		Name:               input.Name,
		RegistrationNumber: input.RegistrationNumber,
		Status:             models.VehicleStatusActive,
		ImageUrl:           input.ImageUrl,
	}
	if err := config.GetDB().Create(&vehicle).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func ListVehicles(c *gin.Context) {
	vehicles, err := models.ListVehicles(config.GetDB())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

func GetVehicle(c *gin.Context) {
	vehicle, err := models.GetVehicleById(config.GetDB(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

type updateVehicleInput struct {
	Name               *string               `json:"name"`
	RegistrationNumber *string               `json:"registration_number"`
	Status             *models.VehicleStatus `json:"status"`
	ImageUrl           *string               `json:"image_url"`
}

// UpdateVehicle patches identity fields. CurrentKm moves through fuel postings.
func UpdateVehicle(c *gin.Context) {
	var input updateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()
	vehicle, err := models.GetVehicleById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Name != nil {
		vehicle.Name = *input.Name
	}
	if input.RegistrationNumber != nil {
		vehicle.RegistrationNumber = *input.RegistrationNumber
	}
	if input.Status != nil {
		if *input.Status != models.VehicleStatusActive && *input.Status != models.VehicleStatusInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle status"})
			return
		}
		vehicle.Status = *input.Status
	}
	if input.ImageUrl != nil {
		vehicle.ImageUrl = *input.ImageUrl
	}

	if err := db.Save(vehicle).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func CreateBorrowedMoney(c *gin.Context) {
	var input models.NewBorrowedMoney
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	if !input.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	entry := models.BorrowedMoney{
		Name:    input.Name,
		Amount:  input.Amount,
		Details: input.Details,
	}
	if err := config.GetDB().Create(&entry).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func ListBorrowedMoney(c *gin.Context) {
	entries, err := models.ListBorrowedMoney(config.GetDB())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"borrowed_money": entries})
}

func MarkBorrowedMoneyReturned(c *gin.Context) {
	db := config.GetDB()
	var entry models.BorrowedMoney
	if err := db.First(&entry, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	entry.ReturnedAt = &now
	if err := db.Save(&entry).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func ListMyNotifications(c *gin.Context) {
	claim := middlewares.CtxValue(c.Request.Context())
	if claim == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := models.ListNotifications(config.GetDB(), claim.ID, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func ReadNotification(c *gin.Context) {
	if err := models.MarkNotificationRead(config.GetDB(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

func ReadAllNotifications(c *gin.Context) {
	claim := middlewares.CtxValue(c.Request.Context())
	if claim == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := models.MarkAllNotificationsRead(config.GetDB(), claim.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

type NewNotification struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message"`
	UserId  string `json:"user_id"` // empty = broadcast to everyone
}

func CreateNotification(c *gin.Context) {
	var body NewNotification
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification := models.Notification{
		Title:   body.Title,
		Message: body.Message,
		UserId:  body.UserId,
	}
	if err := config.GetDB().Create(&notification).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}
