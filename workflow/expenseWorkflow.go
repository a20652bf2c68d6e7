package workflow

import (
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ExpenseInput books a business expense paid from the cash box (CASH) or a
// bank account (BANK). The expense row is the detail record; the mirror
// transaction carries the ledger effect.
type ExpenseInput struct {
	Title   string             `json:"title" binding:"required"`
	Amount  decimal.Decimal    `json:"amount" binding:"required"`
	Type    models.ExpenseType `json:"type" binding:"required"`
	BankId  string             `json:"bank_id"`
	Details string             `json:"details"`
}

func PostExpense(db *gorm.DB, logger *logrus.Logger, input ExpenseInput) (*models.Expense, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}
	if input.Type == models.ExpenseTypeBank && input.BankId == "" {
		return nil, utils.ErrorBankNotFound
	}
	if input.Type == models.ExpenseTypeCash {
		input.BankId = ""
	}

	expense := &models.Expense{
		Title:   input.Title,
		Amount:  input.Amount,
		Type:    input.Type,
		BankId:  input.BankId,
		Details: input.Details,
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypeExpense,
		BankId:      input.BankId,
		TotalAmount: input.Amount,
		Unit:        models.UnitInr,
		Details:     input.Title,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostExpense", "computeAppliedDeltas", input, err)
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "PostExpense", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		if err := tx.Create(expense).Error; err != nil {
			config.LogError(logger, "workflow", "PostExpense", "CreateExpense", expense, err)
			return err
		}

		txn.ExpenseId = expense.Id
		if err := preparePosting(tx, txn); err != nil {
			config.LogError(logger, "workflow", "PostExpense", "preparePosting", txn, err)
			return err
		}
		if err := tx.Create(txn).Error; err != nil {
			config.LogError(logger, "workflow", "PostExpense", "CreateTransaction", txn, err)
			return err
		}
		if err := applyTransactionDeltas(tx, txn, false); err != nil {
			config.LogError(logger, "workflow", "PostExpense", "applyTransactionDeltas", txn, err)
			return err
		}

		err := tx.Model(&models.Expense{}).Where("id = ?", expense.Id).
			Update("transaction_id", txn.Id).Error
		if err != nil {
			config.LogError(logger, "workflow", "PostExpense", "LinkExpense", expense, err)
			return err
		}
		expense.TransactionId = txn.Id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// EditExpense adjusts an expense amount/title and re-applies the ledger
// difference through the mirror transaction.
func EditExpense(db *gorm.DB, logger *logrus.Logger, expenseId string, title string, amount decimal.Decimal, details string) (*models.Expense, error) {
	if !amount.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}

	var expense *models.Expense
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "EditExpense", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		var err error
		expense, err = models.GetExpenseById(tx, expenseId)
		if err != nil {
			config.LogError(logger, "workflow", "EditExpense", "GetExpenseById", expenseId, err)
			return err
		}

		if expense.TransactionId != "" {
			_, err = editTransactionInTx(tx, logger, expense.TransactionId, EditTransactionInput{
				TotalAmount: &amount,
			})
			if err != nil {
				return err
			}
		}

		err = tx.Model(&models.Expense{}).Where("id = ?", expense.Id).
			Updates(map[string]interface{}{
				"title":   title,
				"amount":  amount,
				"details": details,
			}).Error
		if err != nil {
			config.LogError(logger, "workflow", "EditExpense", "UpdateExpense", expense, err)
			return err
		}
		expense.Title = title
		expense.Amount = amount
		expense.Details = details
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense reverses the mirror transaction and removes both rows.
func DeleteExpense(db *gorm.DB, logger *logrus.Logger, expenseId string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "DeleteExpense", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		expense, err := models.GetExpenseById(tx, expenseId)
		if err != nil {
			config.LogError(logger, "workflow", "DeleteExpense", "GetExpenseById", expenseId, err)
			return err
		}

		if expense.TransactionId != "" {
			if err := deleteTransactionInTx(tx, logger, expense.TransactionId); err != nil {
				return err
			}
			// the mirror delete removed the expense row already
			return nil
		}
		return tx.Delete(&models.Expense{}, "id = ?", expense.Id).Error
	})
}
