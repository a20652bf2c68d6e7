package models

import (
	"errors"

	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Vehicle struct {
	Base
	Name               string          `gorm:"size:100;not null" json:"name"`
	RegistrationNumber string          `gorm:"size:30;uniqueIndex" json:"registration_number"`
	CurrentKm          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_km"`
	Status             VehicleStatus   `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	ImageUrl           string          `gorm:"size:500" json:"image_url"`
}

type NewVehicle struct {
	Name               string `json:"name" binding:"required"`
	RegistrationNumber string `json:"registration_number"`
	ImageUrl           string `json:"image_url"`
}

func GetVehicleById(db *gorm.DB, id string) (*Vehicle, error) {
	var vehicle Vehicle
	if err := db.First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func ListVehicles(db *gorm.DB) ([]Vehicle, error) {
	var vehicles []Vehicle
	err := db.Order("name").Find(&vehicles).Error
	return vehicles, err
}
