package workflow

import (
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CashToBankInput deposits cash from the cash box into a bank account.
type CashToBankInput struct {
	BankId  string          `json:"bank_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Details string          `json:"details"`
}

func PostCashToBank(db *gorm.DB, logger *logrus.Logger, input CashToBankInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypeCashToBank,
		BankId:      input.BankId,
		TotalAmount: input.Amount,
		Unit:        models.UnitInr,
		Details:     input.Details,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostCashToBank", "computeAppliedDeltas", input, err)
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "PostCashToBank", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		if err := preparePosting(tx, txn); err != nil {
			config.LogError(logger, "workflow", "PostCashToBank", "preparePosting", txn, err)
			return err
		}
		if err := tx.Create(txn).Error; err != nil {
			config.LogError(logger, "workflow", "PostCashToBank", "CreateTransaction", txn, err)
			return err
		}
		if err := applyTransactionDeltas(tx, txn, false); err != nil {
			config.LogError(logger, "workflow", "PostCashToBank", "applyTransactionDeltas", txn, err)
			return err
		}

		deposit := &models.CashToBank{
			Amount:        input.Amount,
			BankId:        input.BankId,
			Details:       input.Details,
			TransactionId: txn.Id,
		}
		if err := tx.Create(deposit).Error; err != nil {
			config.LogError(logger, "workflow", "PostCashToBank", "CreateCashToBank", deposit, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// BankTransferInput moves money between two bank accounts.
type BankTransferInput struct {
	FromBankId string          `json:"from_bank_id" binding:"required"`
	ToBankId   string          `json:"to_bank_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Details    string          `json:"details"`
}

func PostBankTransfer(db *gorm.DB, logger *logrus.Logger, input BankTransferInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}
	if input.FromBankId == input.ToBankId {
		return nil, utils.ErrorBankNotFound
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypeBankToBank,
		BankId:      input.FromBankId,
		ToBankId:    input.ToBankId,
		TotalAmount: input.Amount,
		Unit:        models.UnitInr,
		Details:     input.Details,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostBankTransfer", "computeAppliedDeltas", input, err)
		return nil, err
	}

	if err := postTransaction(db, logger, "PostBankTransfer", txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// BankAdjustmentInput sets a bank balance to an externally observed value;
// the delta against the current balance is what gets posted, so the journal
// stays replayable.
type BankAdjustmentInput struct {
	BankId     string          `json:"bank_id" binding:"required"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Details    string          `json:"details"`
}

func PostBankAdjustment(db *gorm.DB, logger *logrus.Logger, input BankAdjustmentInput) (*models.Transaction, error) {
	if input.NewBalance.IsNegative() {
		return nil, utils.ErrorInvalidAmount
	}

	var txn *models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "PostBankAdjustment", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		bank, err := models.GetBankById(tx, input.BankId)
		if err != nil {
			config.LogError(logger, "workflow", "PostBankAdjustment", "GetBankById", input, err)
			return err
		}

		delta := input.NewBalance.Sub(bank.Balance)
		txn = &models.Transaction{
			Type:             models.TransactionTypeUpdateBank,
			BankId:           input.BankId,
			TotalAmount:      input.NewBalance,
			Unit:             models.UnitInr,
			Details:          input.Details,
			AppliedBankDelta: delta,
		}

		if err := preparePosting(tx, txn); err != nil {
			config.LogError(logger, "workflow", "PostBankAdjustment", "preparePosting", txn, err)
			return err
		}
		if err := tx.Create(txn).Error; err != nil {
			config.LogError(logger, "workflow", "PostBankAdjustment", "CreateTransaction", txn, err)
			return err
		}
		if err := applyTransactionDeltas(tx, txn, false); err != nil {
			config.LogError(logger, "workflow", "PostBankAdjustment", "applyTransactionDeltas", txn, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// CashAdjustmentInput corrects the cash box by a signed amount. A negative
// amount still may not take totalCash below zero.
type CashAdjustmentInput struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Details string          `json:"details"`
}

func PostCashAdjustment(db *gorm.DB, logger *logrus.Logger, input CashAdjustmentInput) (*models.Transaction, error) {
	if input.Amount.IsZero() {
		return nil, utils.ErrorInvalidAmount
	}

	txn := &models.Transaction{
		Type:             models.TransactionTypeUpdateCash,
		TotalAmount:      input.Amount.Abs(),
		Unit:             models.UnitInr,
		Details:          input.Details,
		Date:             nowFunc(),
		AppliedCashDelta: input.Amount,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "PostCashAdjustment", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		if err := tx.Create(txn).Error; err != nil {
			config.LogError(logger, "workflow", "PostCashAdjustment", "CreateTransaction", txn, err)
			return err
		}
		if err := applyTransactionDeltas(tx, txn, false); err != nil {
			config.LogError(logger, "workflow", "PostCashAdjustment", "applyTransactionDeltas", txn, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
