package workflow

import (
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SellInput is the unambiguous request shape for a SELL. At most one of
// CustomerId / CompanyId may be set; a sale with neither is a plain cash
// sale and must be fully paid.
type SellInput struct {
	DriverId    string          `json:"driver_id" binding:"required"`
	CustomerId  string          `json:"customer_id"`
	CompanyId   string          `json:"company_id"`
	BankId      string          `json:"bank_id"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate"`
	TotalAmount decimal.Decimal `json:"total_amount" binding:"required"`
	PaymentCash decimal.Decimal `json:"payment_cash"`
	PaymentUpi  decimal.Decimal `json:"payment_upi"`
	Details     string          `json:"details"`
}

func PostSell(db *gorm.DB, logger *logrus.Logger, input SellInput) (*models.Transaction, error) {
	if err := validateSellInput(input); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypeSell,
		DriverId:    input.DriverId,
		CustomerId:  input.CustomerId,
		CompanyId:   input.CompanyId,
		BankId:      input.BankId,
		Quantity:    input.Quantity,
		Rate:        input.Rate,
		TotalAmount: input.TotalAmount,
		PaymentCash: input.PaymentCash,
		PaymentUpi:  input.PaymentUpi,
		Unit:        models.UnitKg,
		Details:     input.Details,
	}
	if input.CustomerId != "" {
		txn.SubType = models.SubTypeCustomer
	} else if input.CompanyId != "" {
		txn.SubType = models.SubTypeCompany
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostSell", "computeAppliedDeltas", input, err)
		return nil, err
	}

	if err := postTransaction(db, logger, "PostSell", txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func validateSellInput(input SellInput) error {
	if !input.Quantity.IsPositive() {
		return utils.ErrorInvalidAmount
	}
	if input.TotalAmount.IsNegative() || input.PaymentCash.IsNegative() || input.PaymentUpi.IsNegative() {
		return utils.ErrorInvalidAmount
	}
	if input.CustomerId != "" && input.CompanyId != "" {
		return utils.ErrorAmbiguousCounterparty
	}
	// A walk-in sale has nobody to carry the remainder on credit.
	if input.CustomerId == "" && input.CompanyId == "" {
		paid := input.PaymentCash.Add(input.PaymentUpi)
		if !paid.Equal(input.TotalAmount) {
			return utils.ErrorUnsettledCashSale
		}
	}
	return nil
}
