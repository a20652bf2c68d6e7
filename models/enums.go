package models

type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleDriver UserRole = "DRIVER"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
)

type VehicleStatus string

const (
	VehicleStatusActive   VehicleStatus = "ACTIVE"
	VehicleStatusInactive VehicleStatus = "INACTIVE"
)

type TransactionType string

const (
	TransactionTypeBuy            TransactionType = "BUY"
	TransactionTypeSell           TransactionType = "SELL"
	TransactionTypeShopBuy        TransactionType = "SHOP_BUY"
	TransactionTypePalti          TransactionType = "PALTI"
	TransactionTypeWeightLoss     TransactionType = "WEIGHT_LOSS"
	TransactionTypeFuel           TransactionType = "FUEL"
	TransactionTypeExpense        TransactionType = "EXPENSE"
	TransactionTypePayment        TransactionType = "PAYMENT"
	TransactionTypeReceivePayment TransactionType = "RECEIVE_PAYMENT"
	TransactionTypeDebitNote      TransactionType = "DEBIT_NOTE"
	TransactionTypeCreditNote     TransactionType = "CREDIT_NOTE"
	TransactionTypeCashToBank     TransactionType = "CASH_TO_BANK"
	TransactionTypeBankToBank     TransactionType = "BANK_TO_BANK"
	TransactionTypeUpdateBank     TransactionType = "UPDATE_BANK"
	TransactionTypeUpdateCash     TransactionType = "UPDATE_CASH"
	TransactionTypeAdvancePayment TransactionType = "ADVANCE_PAYMENT"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeBuy, TransactionTypeSell, TransactionTypeShopBuy,
		TransactionTypePalti, TransactionTypeWeightLoss, TransactionTypeFuel,
		TransactionTypeExpense, TransactionTypePayment, TransactionTypeReceivePayment,
		TransactionTypeDebitNote, TransactionTypeCreditNote, TransactionTypeCashToBank,
		TransactionTypeBankToBank, TransactionTypeUpdateBank, TransactionTypeUpdateCash,
		TransactionTypeAdvancePayment:
		return true
	}
	return false
}

// TransactionSubType qualifies a transaction within its type: the counterparty
// kind for payments, or the loss reason for weight-loss entries.
type TransactionSubType string

const (
	SubTypeCustomer  TransactionSubType = "CUSTOMER"
	SubTypeCompany   TransactionSubType = "COMPANY"
	SubTypeDriver    TransactionSubType = "DRIVER"
	SubTypeMortality TransactionSubType = "MORTALITY"
	SubTypeWastage   TransactionSubType = "WASTAGE"
)

type PaltiAction string

const (
	PaltiActionAdd      PaltiAction = "ADD"
	PaltiActionSubtract PaltiAction = "SUBTRACT"
)

type Unit string

const (
	UnitKg    Unit = "KG"
	UnitLitre Unit = "LITRE"
	UnitInr   Unit = "INR"
)

type ExpenseType string

const (
	ExpenseTypeCash ExpenseType = "CASH"
	ExpenseTypeBank ExpenseType = "BANK"
)
