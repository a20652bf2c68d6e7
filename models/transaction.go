package models

import (
	"errors"
	"time"

	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is the single journal table: every ledger operation writes one
// row here besides mutating the cached balances it touches.
//
// The Applied* columns record the exact signed delta the posting applied to
// each balance. Reversal and edit work only from these stored deltas, never
// from a replayed request body, so a delete always undoes precisely what the
// create did even if the posting rules change later.
type Transaction struct {
	Base
	Type    TransactionType    `gorm:"size:30;not null;index" json:"type"`
	SubType TransactionSubType `gorm:"size:30" json:"sub_type"`

	DriverId     string `gorm:"size:36;index" json:"driver_id"`
	DriverName   string `gorm:"size:100" json:"driver_name"`
	CustomerId   string `gorm:"size:36;index" json:"customer_id"`
	CustomerName string `gorm:"size:100" json:"customer_name"`
	CompanyId    string `gorm:"size:36;index" json:"company_id"`
	CompanyName  string `gorm:"size:100" json:"company_name"`
	BankId       string `gorm:"size:36;index" json:"bank_id"`
	ToBankId     string `gorm:"size:36" json:"to_bank_id"`
	VehicleId    string `gorm:"size:36;index" json:"vehicle_id"`
	ExpenseId    string `gorm:"size:36" json:"expense_id"`

	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	PaymentCash decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"payment_cash"`
	PaymentUpi  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"payment_upi"`
	PaltiAction PaltiAction     `gorm:"size:10" json:"palti_action"`
	Unit        Unit            `gorm:"size:10" json:"unit"`
	Details     string          `gorm:"type:text" json:"details"`

	// Field context captured by the driver app. Date is the business day the
	// event belongs to, which can differ from CreatedAt when a posting is
	// entered late.
	Date     time.Time `gorm:"index" json:"date"`
	ImageUrl string    `gorm:"size:500" json:"image_url"`
	Location string    `gorm:"size:255" json:"location"`
	GpsLat   float64   `gorm:"default:0" json:"gps_lat"`
	GpsLng   float64   `gorm:"default:0" json:"gps_lng"`

	AppliedCustomerDelta   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"applied_customer_delta"`
	AppliedCompanyDelta    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"applied_company_delta"`
	AppliedBankDelta       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"applied_bank_delta"`
	AppliedToBankDelta     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"applied_to_bank_delta"`
	AppliedCashDelta       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"applied_cash_delta"`
	AppliedWalletCashDelta decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"applied_wallet_cash_delta"`
	AppliedWalletUpiDelta  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"applied_wallet_upi_delta"`
	AppliedStockDelta      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"applied_stock_delta"`
}

func GetTransactionById(db *gorm.DB, id string) (*Transaction, error) {
	var txn Transaction
	if err := db.First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

type TransactionFilter struct {
	Types      []TransactionType
	DriverId   string
	CustomerId string
	CompanyId  string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func ListTransactions(db *gorm.DB, filter TransactionFilter) ([]Transaction, int64, error) {
	q := db.Model(&Transaction{})
	if len(filter.Types) > 0 {
		q = q.Where("type IN ?", filter.Types)
	}
	if filter.DriverId != "" {
		q = q.Where("driver_id = ?", filter.DriverId)
	}
	if filter.CustomerId != "" {
		q = q.Where("customer_id = ?", filter.CustomerId)
	}
	if filter.CompanyId != "" {
		q = q.Where("company_id = ?", filter.CompanyId)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var txns []Transaction
	if err := q.Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
