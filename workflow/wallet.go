package workflow

import (
	"github.com/mandihub/mandi_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// applyWalletDelta keeps a driver's cash-in-hand / UPI-collected mirror in
// step with SELL and RECEIVE_PAYMENT postings. It runs inside the same
// transaction as the parent ledger write; the wallet is informational, so no
// non-negative guard applies.
func applyWalletDelta(tx *gorm.DB, driverId string, cashDelta, upiDelta decimal.Decimal) error {
	if cashDelta.IsZero() && upiDelta.IsZero() {
		return nil
	}

	driver, err := models.GetUserById(tx, driverId)
	if err != nil {
		return err
	}

	return tx.Model(&models.User{}).Where("id = ?", driver.Id).
		Updates(map[string]interface{}{
			"cash_in_hand":  driver.CashInHand.Add(cashDelta),
			"upi_collected": driver.UpiCollected.Add(upiDelta),
		}).Error
}
