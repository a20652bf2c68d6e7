package models

import (
	"errors"

	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is the detail row behind a PAYMENT or RECEIVE_PAYMENT transaction.
type Payment struct {
	Base
	Amount        decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"amount"`
	EntityType    TransactionSubType `gorm:"size:30;not null" json:"entity_type"`
	CustomerId    string             `gorm:"size:36;index" json:"customer_id"`
	CompanyId     string             `gorm:"size:36;index" json:"company_id"`
	DriverId      string             `gorm:"size:36;index" json:"driver_id"`
	BankId        string             `gorm:"size:36" json:"bank_id"`
	Details       string             `gorm:"type:text" json:"details"`
	TransactionId string             `gorm:"size:36;index" json:"transaction_id"`
}

func GetPaymentById(db *gorm.DB, id string) (*Payment, error) {
	var payment Payment
	if err := db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &payment, nil
}
