package workflow

import (
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DeleteTransaction applies the exact inverse of the stored deltas and
// removes the row plus any detail record (expense, payment, deposit). The
// stored Applied* columns are the only source of truth here: what the create
// applied is what the delete backs out, regardless of what the request body
// said or what the rules say today.
func DeleteTransaction(db *gorm.DB, logger *logrus.Logger, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "DeleteTransaction", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		return deleteTransactionInTx(tx, logger, id)
	})
}

func deleteTransactionInTx(tx *gorm.DB, logger *logrus.Logger, id string) error {
	txn, err := models.GetTransactionById(tx, id)
	if err != nil {
		config.LogError(logger, "workflow", "DeleteTransaction", "GetTransactionById", id, err)
		return err
	}

	if err := applyTransactionDeltas(tx, txn, true); err != nil {
		config.LogError(logger, "workflow", "DeleteTransaction", "reverseDeltas", txn, err)
		return err
	}

	switch txn.Type {
	case models.TransactionTypeExpense:
		if txn.ExpenseId != "" {
			if err := tx.Delete(&models.Expense{}, "id = ?", txn.ExpenseId).Error; err != nil {
				config.LogError(logger, "workflow", "DeleteTransaction", "DeleteExpense", txn, err)
				return err
			}
		}
	case models.TransactionTypePayment, models.TransactionTypeReceivePayment:
		if err := tx.Delete(&models.Payment{}, "transaction_id = ?", txn.Id).Error; err != nil {
			config.LogError(logger, "workflow", "DeleteTransaction", "DeletePayment", txn, err)
			return err
		}
	case models.TransactionTypeCashToBank:
		if err := tx.Delete(&models.CashToBank{}, "transaction_id = ?", txn.Id).Error; err != nil {
			config.LogError(logger, "workflow", "DeleteTransaction", "DeleteCashToBank", txn, err)
			return err
		}
	}

	if err := tx.Delete(&models.Transaction{}, "id = ?", txn.Id).Error; err != nil {
		config.LogError(logger, "workflow", "DeleteTransaction", "DeleteTransaction", txn, err)
		return err
	}
	return nil
}

// EditTransactionInput patches the monetary fields of an existing
// transaction. Nil fields keep their current value.
type EditTransactionInput struct {
	Quantity    *decimal.Decimal `json:"quantity"`
	Rate        *decimal.Decimal `json:"rate"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	PaymentCash *decimal.Decimal `json:"payment_cash"`
	PaymentUpi  *decimal.Decimal `json:"payment_upi"`
	Details     *string          `json:"details"`
}

// EditTransaction retroactively adjusts the ledger by the difference between
// the old and new values: back out the stored deltas, recompute from the
// patched fields, re-apply. The row keeps its id, so references to it stay
// valid. UPDATE_BANK / UPDATE_CASH rows cannot be edited; post a fresh
// adjustment instead.
func EditTransaction(db *gorm.DB, logger *logrus.Logger, id string, input EditTransactionInput) (*models.Transaction, error) {
	var txn *models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "EditTransaction", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		var err error
		txn, err = editTransactionInTx(tx, logger, id, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func editTransactionInTx(tx *gorm.DB, logger *logrus.Logger, id string, input EditTransactionInput) (*models.Transaction, error) {
	txn, err := models.GetTransactionById(tx, id)
	if err != nil {
		config.LogError(logger, "workflow", "EditTransaction", "GetTransactionById", id, err)
		return nil, err
	}

	switch txn.Type {
	case models.TransactionTypeUpdateBank, models.TransactionTypeUpdateCash:
		return nil, utils.ErrorUnsupportedEdit
	}

	if err := applyTransactionDeltas(tx, txn, true); err != nil {
		config.LogError(logger, "workflow", "EditTransaction", "reverseDeltas", txn, err)
		return nil, err
	}

	if input.Quantity != nil {
		if !input.Quantity.IsPositive() {
			return nil, utils.ErrorInvalidAmount
		}
		txn.Quantity = *input.Quantity
	}
	if input.Rate != nil {
		txn.Rate = *input.Rate
	}
	if input.TotalAmount != nil {
		if input.TotalAmount.IsNegative() {
			return nil, utils.ErrorInvalidAmount
		}
		txn.TotalAmount = *input.TotalAmount
	}
	if input.PaymentCash != nil {
		txn.PaymentCash = *input.PaymentCash
	}
	if input.PaymentUpi != nil {
		txn.PaymentUpi = *input.PaymentUpi
	}
	if input.Details != nil {
		txn.Details = *input.Details
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "EditTransaction", "computeAppliedDeltas", txn, err)
		return nil, err
	}

	// the row still holds its old quantity, so discount it from the check
	if err := checkStockPrecondition(tx, txn, txn.Id); err != nil {
		config.LogError(logger, "workflow", "EditTransaction", "checkStockPrecondition", txn, err)
		return nil, err
	}

	if err := applyTransactionDeltas(tx, txn, false); err != nil {
		config.LogError(logger, "workflow", "EditTransaction", "applyTransactionDeltas", txn, err)
		return nil, err
	}

	if err := tx.Save(txn).Error; err != nil {
		config.LogError(logger, "workflow", "EditTransaction", "SaveTransaction", txn, err)
		return nil, err
	}

	// The detail rows mirror the transaction's amount; without this the
	// payment and deposit registers would disagree with the ledger.
	switch txn.Type {
	case models.TransactionTypeExpense:
		if txn.ExpenseId != "" {
			err = tx.Model(&models.Expense{}).Where("id = ?", txn.ExpenseId).
				Update("amount", txn.TotalAmount).Error
			if err != nil {
				config.LogError(logger, "workflow", "EditTransaction", "SyncExpense", txn, err)
				return nil, err
			}
		}
	case models.TransactionTypePayment, models.TransactionTypeReceivePayment:
		err = tx.Model(&models.Payment{}).Where("transaction_id = ?", txn.Id).
			Update("amount", txn.TotalAmount).Error
		if err != nil {
			config.LogError(logger, "workflow", "EditTransaction", "SyncPayment", txn, err)
			return nil, err
		}
	case models.TransactionTypeCashToBank:
		err = tx.Model(&models.CashToBank{}).Where("transaction_id = ?", txn.Id).
			Update("amount", txn.TotalAmount).Error
		if err != nil {
			config.LogError(logger, "workflow", "EditTransaction", "SyncCashToBank", txn, err)
			return nil, err
		}
	}

	return txn, nil
}
