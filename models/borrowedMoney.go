package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BorrowedMoney tracks money borrowed from outside lenders. It is a register
// only: entries do not post to the ledger.
type BorrowedMoney struct {
	Base
	Name       string          `gorm:"size:100;not null" json:"name"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Details    string          `gorm:"type:text" json:"details"`
	ReturnedAt *time.Time      `json:"returned_at"`
}

type NewBorrowedMoney struct {
	Name    string          `json:"name" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Details string          `json:"details"`
}

func ListBorrowedMoney(db *gorm.DB) ([]BorrowedMoney, error) {
	var entries []BorrowedMoney
	err := db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
