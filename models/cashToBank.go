package models

import (
	"github.com/shopspring/decimal"
)

// CashToBank is the detail row behind a CASH_TO_BANK deposit.
type CashToBank struct {
	Base
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	BankId        string          `gorm:"size:36;not null" json:"bank_id"`
	Details       string          `gorm:"type:text" json:"details"`
	TransactionId string          `gorm:"size:36;index" json:"transaction_id"`
}
