package models

import (
	"errors"

	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User covers both the admin console users and the drivers. Drivers carry a
// wallet: CashInHand / UpiCollected mirror the cash and UPI they collected on
// the road and have not handed over yet.
type User struct {
	Base
	Name         string          `gorm:"size:100;not null" json:"name"`
	Mobile       string          `gorm:"size:20;uniqueIndex;not null" json:"mobile"`
	Email        string          `gorm:"size:100" json:"email"`
	PasswordHash string          `gorm:"size:100;not null" json:"-"`
	Role         UserRole        `gorm:"size:20;not null;default:'DRIVER'" json:"role"`
	Status       UserStatus      `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	CashInHand   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cash_in_hand"`
	UpiCollected decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"upi_collected"`
	BaseSalary   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"base_salary"`
	VehicleId    string          `gorm:"size:36;index" json:"vehicle_id"`
}

type NewUser struct {
	Name       string          `json:"name" binding:"required"`
	Mobile     string          `json:"mobile" binding:"required"`
	Email      string          `json:"email"`
	Password   string          `json:"password" binding:"required,min=6"`
	Role       UserRole        `json:"role"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	VehicleId  string          `json:"vehicle_id"`
}

func GetUserById(db *gorm.DB, id string) (*User, error) {
	var user User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func GetUserByMobile(db *gorm.DB, mobile string) (*User, error) {
	var user User
	if err := db.First(&user, "mobile = ?", mobile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetDriverById loads a user and checks it is a driver.
func GetDriverById(db *gorm.DB, id string) (*User, error) {
	var user User
	err := db.First(&user, "id = ? AND role = ?", id, UserRoleDriver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorDriverNotFound
		}
		return nil, err
	}
	return &user, nil
}

func ListDrivers(db *gorm.DB) ([]User, error) {
	var drivers []User
	err := db.Where("role = ?", UserRoleDriver).Order("name").Find(&drivers).Error
	return drivers, err
}
