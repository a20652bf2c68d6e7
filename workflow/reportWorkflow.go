package workflow

import (
	"fmt"
	"time"

	"github.com/mandihub/mandi_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Aggregators are read-only: they re-derive figures from the transaction log
// so the dashboard always matches the sum of the applied deltas.

type DriverStockSummary struct {
	DriverId   string          `json:"driver_id"`
	DriverName string          `json:"driver_name"`
	Stock      decimal.Decimal `json:"stock"`
}

type BankBalanceSummary struct {
	BankId  string          `json:"bank_id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type DashboardStats struct {
	TodayBuyQuantity   decimal.Decimal      `json:"today_buy_quantity"`
	TodayBuyAvgRate    decimal.Decimal      `json:"today_buy_avg_rate"`
	TodaySellQuantity  decimal.Decimal      `json:"today_sell_quantity"`
	TodaySellAvgRate   decimal.Decimal      `json:"today_sell_avg_rate"`
	TodayPaymentsCash  decimal.Decimal      `json:"today_payments_cash"`
	TodayPaymentsUpi   decimal.Decimal      `json:"today_payments_upi"`
	TodayWeightLoss    decimal.Decimal      `json:"today_weight_loss"`
	WeightLossPercent  decimal.Decimal      `json:"weight_loss_percent"`
	TotalStock         decimal.Decimal      `json:"total_stock"`
	DriverStocks       []DriverStockSummary `json:"driver_stocks"`
	TodayExpenseAmount decimal.Decimal      `json:"today_expense_amount"`
	TodayFuelCount     int                  `json:"today_fuel_count"`
	TodayProfit        decimal.Decimal      `json:"today_profit"`
	ActiveDriverCount  int64                `json:"active_driver_count"`
	BankBalances       []BankBalanceSummary `json:"bank_balances"`
	TotalBankBalance   decimal.Decimal      `json:"total_bank_balance"`
	TotalInMarket      decimal.Decimal      `json:"total_in_market"`
	TotalCompanyDue    decimal.Decimal      `json:"total_company_due"`
}

func GetDashboardStats(db *gorm.DB) (*DashboardStats, error) {
	start := startOfDay(nowFunc())

	var txns []models.Transaction
	if err := db.Where("created_at >= ?", start).Find(&txns).Error; err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	buyAmount := decimal.Zero
	sellAmount := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case models.TransactionTypeBuy, models.TransactionTypeShopBuy:
			stats.TodayBuyQuantity = stats.TodayBuyQuantity.Add(t.Quantity)
			buyAmount = buyAmount.Add(t.TotalAmount)
		case models.TransactionTypeSell:
			stats.TodaySellQuantity = stats.TodaySellQuantity.Add(t.Quantity)
			sellAmount = sellAmount.Add(t.TotalAmount)
			stats.TodayPaymentsCash = stats.TodayPaymentsCash.Add(t.PaymentCash)
			stats.TodayPaymentsUpi = stats.TodayPaymentsUpi.Add(t.PaymentUpi)
		case models.TransactionTypeWeightLoss:
			stats.TodayWeightLoss = stats.TodayWeightLoss.Add(t.Quantity)
		case models.TransactionTypeExpense:
			stats.TodayExpenseAmount = stats.TodayExpenseAmount.Add(t.TotalAmount)
		case models.TransactionTypeFuel:
			stats.TodayFuelCount++
		}
	}
	stats.TodayProfit = sellAmount.Sub(buyAmount).Sub(stats.TodayExpenseAmount)

	if stats.TodayBuyQuantity.IsPositive() {
		stats.TodayBuyAvgRate = buyAmount.Div(stats.TodayBuyQuantity).Round(2)
		stats.WeightLossPercent = stats.TodayWeightLoss.
			Div(stats.TodayBuyQuantity).Mul(decimal.NewFromInt(100)).Round(2)
	}
	if stats.TodaySellQuantity.IsPositive() {
		stats.TodaySellAvgRate = sellAmount.Div(stats.TodaySellQuantity).Round(2)
	}

	stocks, err := AllDriverStocks(db)
	if err != nil {
		return nil, err
	}
	if len(stocks) > 0 {
		driverIds := make([]string, 0, len(stocks))
		for id := range stocks {
			driverIds = append(driverIds, id)
		}
		var drivers []models.User
		if err := db.Where("id IN ?", driverIds).Find(&drivers).Error; err != nil {
			return nil, err
		}
		names := make(map[string]string, len(drivers))
		for _, d := range drivers {
			names[d.Id] = d.Name
		}
		for _, id := range driverIds {
			stats.TotalStock = stats.TotalStock.Add(stocks[id])
			stats.DriverStocks = append(stats.DriverStocks, DriverStockSummary{
				DriverId:   id,
				DriverName: names[id],
				Stock:      stocks[id],
			})
		}
	}

	err = db.Model(&models.User{}).
		Where("role = ? AND status = ?", models.UserRoleDriver, models.UserStatusActive).
		Count(&stats.ActiveDriverCount).Error
	if err != nil {
		return nil, err
	}

	var banks []models.Bank
	if err := db.Order("name").Find(&banks).Error; err != nil {
		return nil, err
	}
	for _, b := range banks {
		stats.TotalBankBalance = stats.TotalBankBalance.Add(b.Balance)
		stats.BankBalances = append(stats.BankBalances, BankBalanceSummary{
			BankId:  b.Id,
			Name:    b.Name,
			Balance: b.Balance,
		})
	}

	// Receivables still out with customers, and what the business owes companies.
	err = db.Model(&models.Customer{}).
		Select("COALESCE(SUM(balance), 0)").Scan(&stats.TotalInMarket).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Company{}).
		Select("COALESCE(SUM(amount_due), 0)").Scan(&stats.TotalCompanyDue).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

type CashFlowEntry struct {
	TransactionId string                 `json:"transaction_id"`
	Type          models.TransactionType `json:"type"`
	Narration     string                 `json:"narration"`
	CashIn        decimal.Decimal        `json:"cash_in"`
	CashOut       decimal.Decimal        `json:"cash_out"`
	At            time.Time              `json:"at"`
}

type CashFlowReport struct {
	Entries      []CashFlowEntry `json:"entries"`
	TotalCashIn  decimal.Decimal `json:"total_cash_in"`
	TotalCashOut decimal.Decimal `json:"total_cash_out"`
	NetCash      decimal.Decimal `json:"net_cash"`
}

// GetCashFlow breaks down physical cash movement over a window, one entry per
// transaction that touched the cash box, with a human-readable narration.
func GetCashFlow(db *gorm.DB, from, to time.Time) (*CashFlowReport, error) {
	var txns []models.Transaction
	err := db.Where("created_at >= ? AND created_at < ?", from, to).
		Where("applied_cash_delta <> 0").
		Order("created_at").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	report := &CashFlowReport{Entries: make([]CashFlowEntry, 0, len(txns))}
	for _, t := range txns {
		entry := CashFlowEntry{
			TransactionId: t.Id,
			Type:          t.Type,
			Narration:     narrate(t),
			At:            t.CreatedAt,
		}
		if t.AppliedCashDelta.IsPositive() {
			entry.CashIn = t.AppliedCashDelta
			report.TotalCashIn = report.TotalCashIn.Add(t.AppliedCashDelta)
		} else {
			entry.CashOut = t.AppliedCashDelta.Neg()
			report.TotalCashOut = report.TotalCashOut.Add(t.AppliedCashDelta.Neg())
		}
		report.Entries = append(report.Entries, entry)
	}
	report.NetCash = report.TotalCashIn.Sub(report.TotalCashOut)
	return report, nil
}

func narrate(t models.Transaction) string {
	switch t.Type {
	case models.TransactionTypeSell:
		if t.CustomerName != "" {
			return fmt.Sprintf("Cash from sale of %s kg to %s", t.Quantity.String(), t.CustomerName)
		}
		return fmt.Sprintf("Cash from sale of %s kg", t.Quantity.String())
	case models.TransactionTypeExpense:
		return fmt.Sprintf("Expense: %s", t.Details)
	case models.TransactionTypePayment:
		if t.CustomerName != "" {
			return fmt.Sprintf("Paid %s to customer %s", t.TotalAmount.String(), t.CustomerName)
		}
		return fmt.Sprintf("Paid %s to company %s", t.TotalAmount.String(), t.CompanyName)
	case models.TransactionTypeReceivePayment:
		switch {
		case t.CustomerName != "":
			return fmt.Sprintf("Received %s from customer %s", t.TotalAmount.String(), t.CustomerName)
		case t.CompanyName != "":
			return fmt.Sprintf("Received %s from company %s", t.TotalAmount.String(), t.CompanyName)
		default:
			return fmt.Sprintf("Cash handover from driver %s", t.DriverName)
		}
	case models.TransactionTypeAdvancePayment:
		return fmt.Sprintf("Advance from customer %s", t.CustomerName)
	case models.TransactionTypeCashToBank:
		return fmt.Sprintf("Cash deposited to bank (%s)", t.TotalAmount.String())
	case models.TransactionTypeUpdateCash:
		return "Manual cash adjustment"
	default:
		return string(t.Type)
	}
}

type ProfitReport struct {
	SellTotal           decimal.Decimal `json:"sell_total"`
	BuyTotal            decimal.Decimal `json:"buy_total"`
	ExpenseTotal        decimal.Decimal `json:"expense_total"`
	PaymentTotal        decimal.Decimal `json:"payment_total"`
	ReceivePaymentTotal decimal.Decimal `json:"receive_payment_total"`
	Profit              decimal.Decimal `json:"profit"`
}

func GetProfitReport(db *gorm.DB, from, to time.Time) (*ProfitReport, error) {
	var txns []models.Transaction
	err := db.Where("created_at >= ? AND created_at < ?", from, to).Find(&txns).Error
	if err != nil {
		return nil, err
	}

	report := &ProfitReport{}
	for _, t := range txns {
		switch t.Type {
		case models.TransactionTypeSell:
			report.SellTotal = report.SellTotal.Add(t.TotalAmount)
		case models.TransactionTypeBuy, models.TransactionTypeShopBuy:
			report.BuyTotal = report.BuyTotal.Add(t.TotalAmount)
		case models.TransactionTypeExpense:
			report.ExpenseTotal = report.ExpenseTotal.Add(t.TotalAmount)
		case models.TransactionTypePayment:
			report.PaymentTotal = report.PaymentTotal.Add(t.TotalAmount)
		case models.TransactionTypeReceivePayment:
			report.ReceivePaymentTotal = report.ReceivePaymentTotal.Add(t.TotalAmount)
		}
	}
	report.Profit = report.SellTotal.
		Sub(report.BuyTotal).
		Sub(report.ExpenseTotal).
		Add(report.PaymentTotal).
		Sub(report.ReceivePaymentTotal)
	return report, nil
}

type DriverDayReport struct {
	DriverId      string               `json:"driver_id"`
	BuyQuantity   decimal.Decimal      `json:"buy_quantity"`
	SellQuantity  decimal.Decimal      `json:"sell_quantity"`
	SellAmount    decimal.Decimal      `json:"sell_amount"`
	CashCollected decimal.Decimal      `json:"cash_collected"`
	UpiCollected  decimal.Decimal      `json:"upi_collected"`
	WeightLoss    decimal.Decimal      `json:"weight_loss"`
	FuelAmount    decimal.Decimal      `json:"fuel_amount"`
	Stock         decimal.Decimal      `json:"stock"`
	Transactions  []models.Transaction `json:"transactions"`
}

func GetDriverDayReport(db *gorm.DB, driverId string, from, to time.Time) (*DriverDayReport, error) {
	var txns []models.Transaction
	err := db.Where("driver_id = ?", driverId).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	report := &DriverDayReport{DriverId: driverId, Transactions: txns}
	for _, t := range txns {
		switch t.Type {
		case models.TransactionTypeBuy, models.TransactionTypeShopBuy:
			report.BuyQuantity = report.BuyQuantity.Add(t.Quantity)
		case models.TransactionTypeSell:
			report.SellQuantity = report.SellQuantity.Add(t.Quantity)
			report.SellAmount = report.SellAmount.Add(t.TotalAmount)
			report.CashCollected = report.CashCollected.Add(t.PaymentCash)
			report.UpiCollected = report.UpiCollected.Add(t.PaymentUpi)
		case models.TransactionTypeWeightLoss:
			report.WeightLoss = report.WeightLoss.Add(t.Quantity)
		case models.TransactionTypeFuel:
			report.FuelAmount = report.FuelAmount.Add(t.TotalAmount)
		}
	}

	stock, err := DriverStock(db, driverId)
	if err != nil {
		return nil, err
	}
	report.Stock = stock
	return report, nil
}
