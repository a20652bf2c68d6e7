package workflow

import (
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PaymentInput is an outbound payment: to a customer (refund / settling their
// credit balance) or to a company (paying down the payable). Exactly one of
// CustomerId / CompanyId must be set. BankId empty means paid from the cash
// box.
type PaymentInput struct {
	CustomerId string          `json:"customer_id"`
	CompanyId  string          `json:"company_id"`
	BankId     string          `json:"bank_id"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Details    string          `json:"details"`
}

func PostPayment(db *gorm.DB, logger *logrus.Logger, input PaymentInput) (*models.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}
	if (input.CustomerId == "") == (input.CompanyId == "") {
		return nil, utils.ErrorAmbiguousCounterparty
	}

	subType := models.SubTypeCustomer
	if input.CompanyId != "" {
		subType = models.SubTypeCompany
	}

	payment := &models.Payment{
		Amount:     input.Amount,
		EntityType: subType,
		CustomerId: input.CustomerId,
		CompanyId:  input.CompanyId,
		BankId:     input.BankId,
		Details:    input.Details,
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypePayment,
		SubType:     subType,
		CustomerId:  input.CustomerId,
		CompanyId:   input.CompanyId,
		BankId:      input.BankId,
		TotalAmount: input.Amount,
		Unit:        models.UnitInr,
		Details:     input.Details,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostPayment", "computeAppliedDeltas", input, err)
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "PostPayment", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		if err := preparePosting(tx, txn); err != nil {
			config.LogError(logger, "workflow", "PostPayment", "preparePosting", txn, err)
			return err
		}
		if err := tx.Create(txn).Error; err != nil {
			config.LogError(logger, "workflow", "PostPayment", "CreateTransaction", txn, err)
			return err
		}
		if err := applyTransactionDeltas(tx, txn, false); err != nil {
			config.LogError(logger, "workflow", "PostPayment", "applyTransactionDeltas", txn, err)
			return err
		}

		payment.TransactionId = txn.Id
		if err := tx.Create(payment).Error; err != nil {
			config.LogError(logger, "workflow", "PostPayment", "CreatePayment", payment, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ReceivePaymentInput is an inbound payment: from a customer, from a company,
// or a driver handing over collected cash (neither customer nor company set,
// DriverId required).
type ReceivePaymentInput struct {
	CustomerId string          `json:"customer_id"`
	CompanyId  string          `json:"company_id"`
	DriverId   string          `json:"driver_id"`
	BankId     string          `json:"bank_id"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Details    string          `json:"details"`
}

func PostReceivePayment(db *gorm.DB, logger *logrus.Logger, input ReceivePaymentInput) (*models.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}
	if input.CustomerId != "" && input.CompanyId != "" {
		return nil, utils.ErrorAmbiguousCounterparty
	}

	var subType models.TransactionSubType
	switch {
	case input.CustomerId != "":
		subType = models.SubTypeCustomer
	case input.CompanyId != "":
		subType = models.SubTypeCompany
	default:
		if input.DriverId == "" {
			return nil, utils.ErrorDriverNotFound
		}
		subType = models.SubTypeDriver
	}

	payment := &models.Payment{
		Amount:     input.Amount,
		EntityType: subType,
		CustomerId: input.CustomerId,
		CompanyId:  input.CompanyId,
		DriverId:   input.DriverId,
		BankId:     input.BankId,
		Details:    input.Details,
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypeReceivePayment,
		SubType:     subType,
		DriverId:    input.DriverId,
		CustomerId:  input.CustomerId,
		CompanyId:   input.CompanyId,
		BankId:      input.BankId,
		TotalAmount: input.Amount,
		Unit:        models.UnitInr,
		Details:     input.Details,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostReceivePayment", "computeAppliedDeltas", input, err)
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "PostReceivePayment", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		if err := preparePosting(tx, txn); err != nil {
			config.LogError(logger, "workflow", "PostReceivePayment", "preparePosting", txn, err)
			return err
		}
		if err := tx.Create(txn).Error; err != nil {
			config.LogError(logger, "workflow", "PostReceivePayment", "CreateTransaction", txn, err)
			return err
		}
		if err := applyTransactionDeltas(tx, txn, false); err != nil {
			config.LogError(logger, "workflow", "PostReceivePayment", "applyTransactionDeltas", txn, err)
			return err
		}

		payment.TransactionId = txn.Id
		if err := tx.Create(payment).Error; err != nil {
			config.LogError(logger, "workflow", "PostReceivePayment", "CreatePayment", payment, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
