package models

import (
	"errors"

	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is the detail row behind an EXPENSE transaction; the mirror
// transaction carries the applied deltas.
type Expense struct {
	Base
	Title         string          `gorm:"size:100;not null" json:"title"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Type          ExpenseType     `gorm:"size:10;not null" json:"type"`
	BankId        string          `gorm:"size:36" json:"bank_id"`
	Details       string          `gorm:"type:text" json:"details"`
	TransactionId string          `gorm:"size:36;index" json:"transaction_id"`
}

func GetExpenseById(db *gorm.DB, id string) (*Expense, error) {
	var expense Expense
	if err := db.First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &expense, nil
}
