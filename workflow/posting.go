package workflow

import (
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// computeAppliedDeltas derives the signed balance deltas for a transaction
// from its own business fields and writes them into the Applied* columns.
// This is the rule catalog: creation and edit both go through it, so the two
// paths can never disagree about what a transaction does to the ledger.
//
// UPDATE_BANK and UPDATE_CASH deltas depend on the balance observed at
// posting time and cannot be rederived; their Post functions set the deltas
// directly and edits on them are refused.
func computeAppliedDeltas(txn *models.Transaction) error {
	txn.AppliedCustomerDelta = decimal.Zero
	txn.AppliedCompanyDelta = decimal.Zero
	txn.AppliedBankDelta = decimal.Zero
	txn.AppliedToBankDelta = decimal.Zero
	txn.AppliedCashDelta = decimal.Zero
	txn.AppliedWalletCashDelta = decimal.Zero
	txn.AppliedWalletUpiDelta = decimal.Zero
	txn.AppliedStockDelta = decimal.Zero

	bill := txn.TotalAmount
	paid := txn.PaymentCash.Add(txn.PaymentUpi)
	change := bill.Sub(paid)

	switch txn.Type {
	case models.TransactionTypeBuy:
		txn.AppliedStockDelta = txn.Quantity
		if txn.CompanyId != "" {
			// positive amount_due = business owes the company
			txn.AppliedCompanyDelta = bill
		}

	case models.TransactionTypeShopBuy:
		txn.AppliedStockDelta = txn.Quantity

	case models.TransactionTypePalti:
		if txn.PaltiAction == models.PaltiActionSubtract {
			txn.AppliedStockDelta = txn.Quantity.Neg()
		} else {
			txn.AppliedStockDelta = txn.Quantity
		}

	case models.TransactionTypeWeightLoss:
		txn.AppliedStockDelta = txn.Quantity.Neg()

	case models.TransactionTypeSell:
		txn.AppliedStockDelta = txn.Quantity.Neg()
		if txn.CustomerId != "" {
			// unpaid remainder goes on the customer's tab
			txn.AppliedCustomerDelta = change
		} else if txn.CompanyId != "" {
			// selling against a supplier works off what the business owes
			txn.AppliedCompanyDelta = change.Neg()
		}
		if txn.BankId != "" {
			txn.AppliedBankDelta = txn.PaymentUpi
		}
		txn.AppliedCashDelta = txn.PaymentCash
		txn.AppliedWalletCashDelta = txn.PaymentCash
		txn.AppliedWalletUpiDelta = txn.PaymentUpi

	case models.TransactionTypeFuel:
		// log only; vehicle odometer update happens at posting time

	case models.TransactionTypeExpense:
		if txn.BankId != "" {
			txn.AppliedBankDelta = bill.Neg()
		} else {
			txn.AppliedCashDelta = bill.Neg()
		}

	case models.TransactionTypePayment:
		if txn.CustomerId != "" {
			txn.AppliedCustomerDelta = bill
		} else if txn.CompanyId != "" {
			txn.AppliedCompanyDelta = bill.Neg()
		}
		if txn.BankId != "" {
			txn.AppliedBankDelta = bill.Neg()
		} else {
			txn.AppliedCashDelta = bill.Neg()
		}

	case models.TransactionTypeReceivePayment:
		switch {
		case txn.CustomerId != "":
			txn.AppliedCustomerDelta = bill.Neg()
		case txn.CompanyId != "":
			txn.AppliedCompanyDelta = bill
		default:
			// driver cash handover
			txn.AppliedWalletCashDelta = bill.Neg()
		}
		if txn.BankId != "" {
			txn.AppliedBankDelta = bill
		} else {
			txn.AppliedCashDelta = bill
		}

	case models.TransactionTypeDebitNote:
		txn.AppliedCustomerDelta = bill

	case models.TransactionTypeCreditNote:
		txn.AppliedCustomerDelta = bill.Neg()

	case models.TransactionTypeAdvancePayment:
		txn.AppliedCustomerDelta = bill.Neg()
		txn.AppliedCashDelta = bill

	case models.TransactionTypeCashToBank:
		txn.AppliedCashDelta = bill.Neg()
		txn.AppliedBankDelta = bill

	case models.TransactionTypeBankToBank:
		txn.AppliedBankDelta = bill.Neg()
		txn.AppliedToBankDelta = bill

	case models.TransactionTypeUpdateBank, models.TransactionTypeUpdateCash:
		return utils.ErrorUnsupportedEdit

	default:
		return utils.ErrorTransactionNotFound
	}

	return nil
}

// applyTransactionDeltas applies (or, reversed, backs out) the stored deltas
// of a transaction against every linked balance. A vanished counterparty is a
// loud failure: skipping the adjustment would silently drift the ledger.
func applyTransactionDeltas(tx *gorm.DB, txn *models.Transaction, reverse bool) error {
	sign := decimal.NewFromInt(1)
	if reverse {
		sign = decimal.NewFromInt(-1)
	}

	if d := txn.AppliedCustomerDelta.Mul(sign); txn.CustomerId != "" && !d.IsZero() {
		customer, err := models.GetCustomerById(tx, txn.CustomerId)
		if err != nil {
			return err
		}
		err = tx.Model(&models.Customer{}).Where("id = ?", customer.Id).
			Update("balance", customer.Balance.Add(d)).Error
		if err != nil {
			return err
		}
	}

	if d := txn.AppliedCompanyDelta.Mul(sign); txn.CompanyId != "" && !d.IsZero() {
		company, err := models.GetCompanyById(tx, txn.CompanyId)
		if err != nil {
			return err
		}
		err = tx.Model(&models.Company{}).Where("id = ?", company.Id).
			Update("amount_due", company.AmountDue.Add(d)).Error
		if err != nil {
			return err
		}
	}

	if d := txn.AppliedBankDelta.Mul(sign); txn.BankId != "" && !d.IsZero() {
		if err := applyBankDelta(tx, txn.BankId, d); err != nil {
			return err
		}
	}

	if d := txn.AppliedToBankDelta.Mul(sign); txn.ToBankId != "" && !d.IsZero() {
		if err := applyBankDelta(tx, txn.ToBankId, d); err != nil {
			return err
		}
	}

	if d := txn.AppliedCashDelta.Mul(sign); !d.IsZero() {
		if err := applyCashDelta(tx, d); err != nil {
			return err
		}
	}

	cashD := txn.AppliedWalletCashDelta.Mul(sign)
	upiD := txn.AppliedWalletUpiDelta.Mul(sign)
	if txn.DriverId != "" && (!cashD.IsZero() || !upiD.IsZero()) {
		if err := applyWalletDelta(tx, txn.DriverId, cashD, upiD); err != nil {
			return err
		}
	}

	return nil
}

// preparePosting verifies every referenced entity, denormalizes display
// names onto the row and runs the stock preconditions. All reads happen under
// the posting lock inside the same transaction as the writes they guard.
func preparePosting(tx *gorm.DB, txn *models.Transaction) error {
	if txn.Date.IsZero() {
		txn.Date = nowFunc()
	}
	if txn.DriverId != "" {
		driver, err := models.GetDriverById(tx, txn.DriverId)
		if err != nil {
			return err
		}
		txn.DriverName = driver.Name
	}
	if txn.CustomerId != "" {
		customer, err := models.GetCustomerById(tx, txn.CustomerId)
		if err != nil {
			return err
		}
		txn.CustomerName = customer.Name
	}
	if txn.CompanyId != "" {
		company, err := models.GetCompanyById(tx, txn.CompanyId)
		if err != nil {
			return err
		}
		txn.CompanyName = company.Name
	}
	if txn.BankId != "" {
		if _, err := models.GetBankById(tx, txn.BankId); err != nil {
			return err
		}
	}
	if txn.ToBankId != "" {
		if _, err := models.GetBankById(tx, txn.ToBankId); err != nil {
			return err
		}
	}

	return checkStockPrecondition(tx, txn, "")
}

// checkStockPrecondition rejects a SELL above available stock and a
// WEIGHT_LOSS above the current day's stock, both with the decimal tolerance.
// excludeId lets the edit path discount the row being edited.
func checkStockPrecondition(tx *gorm.DB, txn *models.Transaction, excludeId string) error {
	switch txn.Type {
	case models.TransactionTypeSell:
		available, err := driverStock(tx, txn.DriverId, nil, excludeId)
		if err != nil {
			return err
		}
		if txn.Quantity.GreaterThan(available.Add(StockTolerance)) {
			return utils.ErrorInsufficientStock
		}
	case models.TransactionTypeWeightLoss:
		start := startOfDay(nowFunc())
		available, err := driverStock(tx, txn.DriverId, &start, excludeId)
		if err != nil {
			return err
		}
		if txn.Quantity.GreaterThan(available.Add(StockTolerance)) {
			return utils.ErrorInsufficientStock
		}
	}
	return nil
}

// postTransaction runs one posting end to end: lock, validate, write the row,
// apply the deltas. All-or-nothing under db.Transaction.
func postTransaction(db *gorm.DB, logger *logrus.Logger, funcName string, txn *models.Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", funcName, "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		if err := preparePosting(tx, txn); err != nil {
			config.LogError(logger, "workflow", funcName, "preparePosting", txn, err)
			return err
		}

		if err := tx.Create(txn).Error; err != nil {
			config.LogError(logger, "workflow", funcName, "CreateTransaction", txn, err)
			return err
		}

		if err := applyTransactionDeltas(tx, txn, false); err != nil {
			config.LogError(logger, "workflow", funcName, "applyTransactionDeltas", txn, err)
			return err
		}

		return nil
	})
}
