package models

import (
	"errors"

	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Bank struct {
	Base
	Name          string          `gorm:"size:100;not null" json:"name"`
	AccountNumber string          `gorm:"size:50" json:"account_number"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"balance"`
}

type NewBank struct {
	Name           string          `json:"name" binding:"required"`
	AccountNumber  string          `json:"account_number"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

func GetBankById(db *gorm.DB, id string) (*Bank, error) {
	var bank Bank
	if err := db.First(&bank, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorBankNotFound
		}
		return nil, err
	}
	return &bank, nil
}

func ListBanks(db *gorm.DB) ([]Bank, error) {
	var banks []Bank
	err := db.Order("name").Find(&banks).Error
	return banks, err
}
