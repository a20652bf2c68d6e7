package workflow

import (
	"time"

	"github.com/mandihub/mandi_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockTolerance is the slack allowed on stock checks. Kept as an exact
// decimal so the comparison itself never rounds.
var StockTolerance = decimal.RequireFromString("0.1")

var nowFunc = time.Now

var stockTypes = []models.TransactionType{
	models.TransactionTypeBuy,
	models.TransactionTypeShopBuy,
	models.TransactionTypePalti,
	models.TransactionTypeSell,
	models.TransactionTypeWeightLoss,
}

// DriverStock folds the signed stock deltas over every transaction of the
// driver. Stock is a projection of the log, never a stored counter; summing
// in Go keeps the arithmetic in exact decimals.
func DriverStock(tx *gorm.DB, driverId string) (decimal.Decimal, error) {
	return driverStock(tx, driverId, nil, "")
}

// DriverStockToday bounds the projection to the current calendar day. Only the
// weight-loss guard and the day reports use this window.
func DriverStockToday(tx *gorm.DB, driverId string) (decimal.Decimal, error) {
	start := startOfDay(nowFunc())
	return driverStock(tx, driverId, &start, "")
}

func driverStock(tx *gorm.DB, driverId string, from *time.Time, excludeId string) (decimal.Decimal, error) {
	q := tx.Model(&models.Transaction{}).
		Where("driver_id = ?", driverId).
		Where("type IN ?", stockTypes)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if excludeId != "" {
		q = q.Where("id <> ?", excludeId)
	}

	var deltas []decimal.Decimal
	if err := q.Pluck("applied_stock_delta", &deltas).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, d := range deltas {
		total = total.Add(d)
	}
	return total, nil
}

// AllDriverStocks projects current stock per driver for the dashboard.
func AllDriverStocks(tx *gorm.DB) (map[string]decimal.Decimal, error) {
	var txns []models.Transaction
	err := tx.Select("driver_id", "applied_stock_delta").
		Where("driver_id <> ''").
		Where("type IN ?", stockTypes).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	stocks := make(map[string]decimal.Decimal)
	for _, t := range txns {
		stocks[t.DriverId] = stocks[t.DriverId].Add(t.AppliedStockDelta)
	}
	return stocks, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
