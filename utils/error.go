package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

var (
	ErrorCustomerNotFound    = errors.New("customer not found")
	ErrorCompanyNotFound     = errors.New("company not found")
	ErrorDriverNotFound      = errors.New("driver not found")
	ErrorBankNotFound        = errors.New("bank not found")
	ErrorVehicleNotFound     = errors.New("vehicle not found")
	ErrorTransactionNotFound = errors.New("transaction not found")

	ErrorInsufficientStock = errors.New("not enough stock for this sale")
	ErrorInsufficientCash  = errors.New("total cash is not enough")
	ErrorInsufficientBank  = errors.New("not enough balance in bank")

	// ErrorTotalCashNotConfigured means TOTAL_CASH_ID is unset; distinct from
	// the row being missing so operators can tell config errors from data errors.
	ErrorTotalCashNotConfigured = errors.New("TOTAL_CASH_ID is not configured")
	ErrorTotalCapitalNotFound   = errors.New("total capital record not found")

	ErrorUnsupportedEdit       = errors.New("transaction type cannot be edited")
	ErrorInvalidAmount         = errors.New("amount must be positive")
	ErrorAmbiguousCounterparty = errors.New("specify either a customer or a company, not both")
	ErrorHasTransactions       = errors.New("record has posted transactions and cannot be deleted")
	ErrorUnsettledCashSale     = errors.New("a sale without a customer or company must be fully paid")
)

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
