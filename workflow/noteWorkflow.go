package workflow

import (
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NoteInput is a manual receivable adjustment against a customer. A debit
// note raises what the customer owes, a credit note lowers it; neither moves
// cash or bank.
type NoteInput struct {
	CustomerId string          `json:"customer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Details    string          `json:"details"`
}

func PostDebitNote(db *gorm.DB, logger *logrus.Logger, input NoteInput) (*models.Transaction, error) {
	return postNote(db, logger, "PostDebitNote", models.TransactionTypeDebitNote, input)
}

func PostCreditNote(db *gorm.DB, logger *logrus.Logger, input NoteInput) (*models.Transaction, error) {
	return postNote(db, logger, "PostCreditNote", models.TransactionTypeCreditNote, input)
}

func postNote(db *gorm.DB, logger *logrus.Logger, funcName string, noteType models.TransactionType, input NoteInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}

	txn := &models.Transaction{
		Type:        noteType,
		CustomerId:  input.CustomerId,
		TotalAmount: input.Amount,
		Unit:        models.UnitInr,
		Details:     input.Details,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", funcName, "computeAppliedDeltas", input, err)
		return nil, err
	}

	if err := postTransaction(db, logger, funcName, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// AdvanceInput is an advance taken from a customer: cash comes in and the
// customer's balance drops (possibly below zero, which reads as credit held
// for them).
type AdvanceInput struct {
	CustomerId string          `json:"customer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Details    string          `json:"details"`
}

func PostAdvancePayment(db *gorm.DB, logger *logrus.Logger, input AdvanceInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypeAdvancePayment,
		CustomerId:  input.CustomerId,
		TotalAmount: input.Amount,
		Unit:        models.UnitInr,
		Details:     input.Details,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostAdvancePayment", "computeAppliedDeltas", input, err)
		return nil, err
	}

	if err := postTransaction(db, logger, "PostAdvancePayment", txn); err != nil {
		return nil, err
	}
	return txn, nil
}
