package workflow

import (
	"testing"
	"time"

	"github.com/mandihub/mandi_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats_MatchesPostedFigures(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 10000)
	driver := seedDriver(t, db, "d1")
	customer := seedCustomer(t, db, "c1", 0)

	_, err := PostBuy(db, logger, BuyInput{DriverId: driver.Id, Quantity: dec(100), TotalAmount: dec(9000)})
	require.NoError(t, err)
	_, err = PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		CustomerId:  customer.Id,
		Quantity:    dec(40),
		TotalAmount: dec(4400),
		PaymentCash: dec(2000),
		PaymentUpi:  dec(1000),
	})
	require.NoError(t, err)
	_, err = PostWeightLoss(db, logger, WeightLossInput{DriverId: driver.Id, Quantity: dec(2), Reason: models.SubTypeWastage})
	require.NoError(t, err)

	stats, err := GetDashboardStats(db)
	require.NoError(t, err)

	requireDecimalEqual(t, 100, stats.TodayBuyQuantity, "buy quantity")
	requireDecimalEqual(t, 90, stats.TodayBuyAvgRate, "buy avg rate")
	requireDecimalEqual(t, 40, stats.TodaySellQuantity, "sell quantity")
	requireDecimalEqual(t, 110, stats.TodaySellAvgRate, "sell avg rate")
	requireDecimalEqual(t, 2000, stats.TodayPaymentsCash, "payments cash")
	requireDecimalEqual(t, 1000, stats.TodayPaymentsUpi, "payments upi")
	requireDecimalEqual(t, 2, stats.TodayWeightLoss, "weight loss")
	requireDecimalEqual(t, 58, stats.TotalStock, "total stock")

	require.Len(t, stats.DriverStocks, 1)
	assert.Equal(t, driver.Id, stats.DriverStocks[0].DriverId)
	assert.Equal(t, "d1", stats.DriverStocks[0].DriverName)
	requireDecimalEqual(t, 58, stats.DriverStocks[0].Stock, "driver stock summary")

	assert.EqualValues(t, 1, stats.ActiveDriverCount)
	assert.Equal(t, 0, stats.TodayFuelCount)
	requireDecimalEqual(t, -4600, stats.TodayProfit, "today profit")
	requireDecimalEqual(t, 1400, stats.TotalInMarket, "receivables out with customers")
	requireDecimalEqual(t, 0, stats.TotalCompanyDue, "company dues")
	requireDecimalEqual(t, 0, stats.TotalBankBalance, "bank balance")
}

func TestGetCashFlow_SplitsInAndOut(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 10000)
	customer := seedCustomer(t, db, "c1", 1000)

	_, err := PostReceivePayment(db, logger, ReceivePaymentInput{CustomerId: customer.Id, Amount: dec(600)})
	require.NoError(t, err)
	_, err = PostExpense(db, logger, ExpenseInput{Title: "loading charges", Amount: dec(250), Type: models.ExpenseTypeCash})
	require.NoError(t, err)
	// Notes never touch cash, so they must not appear.
	_, err = PostDebitNote(db, logger, NoteInput{CustomerId: customer.Id, Amount: dec(75)})
	require.NoError(t, err)

	from := startOfDay(time.Now())
	report, err := GetCashFlow(db, from, from.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, report.Entries, 2)
	requireDecimalEqual(t, 600, report.TotalCashIn, "cash in")
	requireDecimalEqual(t, 250, report.TotalCashOut, "cash out")
	requireDecimalEqual(t, 350, report.NetCash, "net cash")
	for _, entry := range report.Entries {
		assert.NotEmpty(t, entry.Narration)
	}
}

func TestGetProfitReport(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 10000)
	driver := seedDriver(t, db, "d1")
	customer := seedCustomer(t, db, "c1", 0)

	_, err := PostBuy(db, logger, BuyInput{DriverId: driver.Id, Quantity: dec(100), TotalAmount: dec(9000)})
	require.NoError(t, err)
	_, err = PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		CustomerId:  customer.Id,
		Quantity:    dec(100),
		TotalAmount: dec(11000),
		PaymentCash: dec(11000),
	})
	require.NoError(t, err)
	_, err = PostExpense(db, logger, ExpenseInput{Title: "toll", Amount: dec(500), Type: models.ExpenseTypeCash})
	require.NoError(t, err)

	from := startOfDay(time.Now())
	report, err := GetProfitReport(db, from, from.AddDate(0, 0, 1))
	require.NoError(t, err)

	requireDecimalEqual(t, 11000, report.SellTotal, "sell total")
	requireDecimalEqual(t, 9000, report.BuyTotal, "buy total")
	requireDecimalEqual(t, 500, report.ExpenseTotal, "expense total")
	requireDecimalEqual(t, 1500, report.Profit, "profit")
}

func TestGetDriverDayReport(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 0)
	driver := seedDriver(t, db, "d1")
	other := seedDriver(t, db, "d2")

	_, err := PostBuy(db, logger, BuyInput{DriverId: driver.Id, Quantity: dec(80), TotalAmount: dec(7200)})
	require.NoError(t, err)
	_, err = PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		Quantity:    dec(30),
		TotalAmount: dec(3300),
		PaymentCash: dec(3300),
	})
	require.NoError(t, err)
	_, err = PostBuy(db, logger, BuyInput{DriverId: other.Id, Quantity: dec(10), TotalAmount: dec(900)})
	require.NoError(t, err)

	from := startOfDay(time.Now())
	report, err := GetDriverDayReport(db, driver.Id, from, from.AddDate(0, 0, 1))
	require.NoError(t, err)

	requireDecimalEqual(t, 80, report.BuyQuantity, "buy quantity")
	requireDecimalEqual(t, 30, report.SellQuantity, "sell quantity")
	requireDecimalEqual(t, 3300, report.CashCollected, "cash collected")
	requireDecimalEqual(t, 50, report.Stock, "stock")
	assert.Len(t, report.Transactions, 2, "only this driver's rows")
}

func TestDriverStockToday_IgnoresEarlierDays(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 0)
	driver := seedDriver(t, db, "d1")

	_, err := PostBuy(db, logger, BuyInput{DriverId: driver.Id, Quantity: dec(30), TotalAmount: dec(2700)})
	require.NoError(t, err)
	yesterdayBuy, err := PostBuy(db, logger, BuyInput{DriverId: driver.Id, Quantity: dec(50), TotalAmount: dec(4500)})
	require.NoError(t, err)

	// Backdate the second buy to yesterday.
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&models.Transaction{}).Where("id = ?", yesterdayBuy.Id).
		Update("created_at", yesterday).Error)

	allTime, err := DriverStock(db, driver.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 80, allTime, "all-time stock")

	today, err := DriverStockToday(db, driver.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 30, today, "today-only stock")
}
