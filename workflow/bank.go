package workflow

import (
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// applyBankDelta mutates one bank balance. Decrements that would leave the
// balance negative are rejected; a missing bank aborts the caller's
// transaction rather than skipping the adjustment.
func applyBankDelta(tx *gorm.DB, bankId string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	bank, err := models.GetBankById(tx, bankId)
	if err != nil {
		return err
	}

	newBalance := bank.Balance.Add(delta)
	if delta.IsNegative() && newBalance.IsNegative() {
		return utils.ErrorInsufficientBank
	}

	return tx.Model(&models.Bank{}).Where("id = ?", bank.Id).
		Update("balance", newBalance).Error
}
