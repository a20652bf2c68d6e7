package workflow

import (
	"testing"

	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSell_AppliesAllBalances(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 10000)
	driver := seedDriver(t, db, "d1")
	customer := seedCustomer(t, db, "c1", 500)
	bank := seedBank(t, db, "b1", 50000)

	_, err := PostBuy(db, logger, BuyInput{
		DriverId:    driver.Id,
		Quantity:    dec(100),
		TotalAmount: dec(9000),
	})
	require.NoError(t, err)

	// Bill 4000, paid 2000 cash + 1000 UPI, remainder 1000 on the tab.
	txn, err := PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		CustomerId:  customer.Id,
		BankId:      bank.Id,
		Quantity:    dec(40),
		TotalAmount: dec(4000),
		PaymentCash: dec(2000),
		PaymentUpi:  dec(1000),
	})
	require.NoError(t, err)
	requireDecimalEqual(t, -40, txn.AppliedStockDelta, "stock delta")

	stock, err := DriverStock(db, driver.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 60, stock, "driver stock")

	requireDecimalEqual(t, 1500, reloadCustomer(t, db, customer.Id).Balance, "customer balance")
	requireDecimalEqual(t, 51000, reloadBank(t, db, bank.Id).Balance, "bank balance")

	capital := reloadCapital(t, db)
	requireDecimalEqual(t, 12000, capital.TotalCash, "total cash")
	requireDecimalEqual(t, 2000, capital.TodayCash, "today cash")

	d := reloadDriver(t, db, driver.Id)
	requireDecimalEqual(t, 2000, d.CashInHand, "wallet cash")
	requireDecimalEqual(t, 1000, d.UpiCollected, "wallet upi")
}

func TestPostSell_RejectsBeyondStock(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 10000)
	driver := seedDriver(t, db, "d1")
	customer := seedCustomer(t, db, "c1", 500)

	_, err := PostBuy(db, logger, BuyInput{
		DriverId:    driver.Id,
		Quantity:    dec(60),
		TotalAmount: dec(5400),
	})
	require.NoError(t, err)

	_, err = PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		CustomerId:  customer.Id,
		Quantity:    dec(70),
		TotalAmount: dec(7000),
		PaymentCash: dec(7000),
	})
	assert.ErrorIs(t, err, utils.ErrorInsufficientStock)

	// Nothing moved.
	requireDecimalEqual(t, 500, reloadCustomer(t, db, customer.Id).Balance, "customer balance")
	requireDecimalEqual(t, 10000, reloadCapital(t, db).TotalCash, "total cash")
	stock, err := DriverStock(db, driver.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 60, stock, "driver stock")
}

func TestPostSell_AmbiguousCounterparty(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()

	_, err := PostSell(db, logger, SellInput{
		DriverId:    "d",
		CustomerId:  "c",
		CompanyId:   "co",
		Quantity:    dec(1),
		TotalAmount: dec(100),
	})
	assert.ErrorIs(t, err, utils.ErrorAmbiguousCounterparty)
}

func TestPostSell_CompanyWorksOffPayable(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 0)
	driver := seedDriver(t, db, "d1")
	company := seedCompany(t, db, "co1", 2000)

	_, err := PostBuy(db, logger, BuyInput{
		DriverId:    driver.Id,
		CompanyId:   company.Id,
		Quantity:    dec(50),
		TotalAmount: dec(4500),
	})
	require.NoError(t, err)
	requireDecimalEqual(t, 6500, reloadCompany(t, db, company.Id).AmountDue, "amount due after buy")

	// Selling on the company's account eats into what the business owes.
	_, err = PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		CompanyId:   company.Id,
		Quantity:    dec(10),
		TotalAmount: dec(1000),
	})
	require.NoError(t, err)
	requireDecimalEqual(t, 5500, reloadCompany(t, db, company.Id).AmountDue, "amount due after sell")
}

func TestPostSell_WalkInMustBeFullyPaid(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 1000)
	driver := seedDriver(t, db, "d1")

	_, err := PostBuy(db, logger, BuyInput{DriverId: driver.Id, Quantity: dec(50), TotalAmount: dec(4500)})
	require.NoError(t, err)

	// Nobody to carry the shortfall: partial payment is refused.
	_, err = PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		Quantity:    dec(10),
		TotalAmount: dec(1000),
		PaymentCash: dec(600),
	})
	assert.ErrorIs(t, err, utils.ErrorUnsettledCashSale)

	_, err = PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		Quantity:    dec(10),
		TotalAmount: dec(1000),
		PaymentCash: dec(1000),
	})
	require.NoError(t, err)
	requireDecimalEqual(t, 2000, reloadCapital(t, db).TotalCash, "cash after settled sale")
}

// Every transaction type that touches a company payable must move it in a
// direction consistent with the others: purchases and money received from the
// company push the payable up, company sales and payments to the company work
// it down.
func TestCompanyPayable_SignsConsistentAcrossTypes(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 20000)
	driver := seedDriver(t, db, "d1")
	company := seedCompany(t, db, "co1", 0)

	buy, err := PostBuy(db, logger, BuyInput{
		DriverId: driver.Id, CompanyId: company.Id,
		Quantity: dec(100), TotalAmount: dec(9000),
	})
	require.NoError(t, err)
	requireDecimalEqual(t, 9000, reloadCompany(t, db, company.Id).AmountDue, "payable after buy")
	requireDecimalEqual(t, 9000, buy.AppliedCompanyDelta, "buy delta positive")

	sell, err := PostSell(db, logger, SellInput{
		DriverId: driver.Id, CompanyId: company.Id,
		Quantity: dec(40), TotalAmount: dec(4000),
	})
	require.NoError(t, err)
	requireDecimalEqual(t, 5000, reloadCompany(t, db, company.Id).AmountDue, "payable after company sale")
	requireDecimalEqual(t, -4000, sell.AppliedCompanyDelta, "sale delta negative")

	paid, err := PostPayment(db, logger, PaymentInput{CompanyId: company.Id, Amount: dec(2000)})
	require.NoError(t, err)
	requireDecimalEqual(t, 3000, reloadCompany(t, db, company.Id).AmountDue, "payable after payment")
	paidTxn, err := models.GetTransactionById(db, paid.TransactionId)
	require.NoError(t, err)
	requireDecimalEqual(t, -2000, paidTxn.AppliedCompanyDelta, "payment delta negative")

	received, err := PostReceivePayment(db, logger, ReceivePaymentInput{CompanyId: company.Id, Amount: dec(1500)})
	require.NoError(t, err)
	requireDecimalEqual(t, 4500, reloadCompany(t, db, company.Id).AmountDue, "payable after money received")
	receivedTxn, err := models.GetTransactionById(db, received.TransactionId)
	require.NoError(t, err)
	requireDecimalEqual(t, 1500, receivedTxn.AppliedCompanyDelta, "receive delta positive")
}

func TestDeleteTransaction_RestoresEveryBalance(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 10000)
	driver := seedDriver(t, db, "d1")
	customer := seedCustomer(t, db, "c1", 500)
	bank := seedBank(t, db, "b1", 50000)

	_, err := PostBuy(db, logger, BuyInput{
		DriverId:    driver.Id,
		Quantity:    dec(100),
		TotalAmount: dec(9000),
	})
	require.NoError(t, err)

	txn, err := PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		CustomerId:  customer.Id,
		BankId:      bank.Id,
		Quantity:    dec(40),
		TotalAmount: dec(4000),
		PaymentCash: dec(2000),
		PaymentUpi:  dec(1000),
	})
	require.NoError(t, err)

	require.NoError(t, DeleteTransaction(db, logger, txn.Id))

	requireDecimalEqual(t, 500, reloadCustomer(t, db, customer.Id).Balance, "customer balance")
	requireDecimalEqual(t, 50000, reloadBank(t, db, bank.Id).Balance, "bank balance")
	requireDecimalEqual(t, 10000, reloadCapital(t, db).TotalCash, "total cash")

	stock, err := DriverStock(db, driver.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 100, stock, "driver stock")

	d := reloadDriver(t, db, driver.Id)
	requireDecimalEqual(t, 0, d.CashInHand, "wallet cash")
	requireDecimalEqual(t, 0, d.UpiCollected, "wallet upi")

	_, err = models.GetTransactionById(db, txn.Id)
	assert.ErrorIs(t, err, utils.ErrorTransactionNotFound)
}

func TestPostWeightLoss_BoundedByTodayStock(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 0)
	driver := seedDriver(t, db, "d1")

	_, err := PostBuy(db, logger, BuyInput{
		DriverId:    driver.Id,
		Quantity:    dec(20),
		TotalAmount: dec(1800),
	})
	require.NoError(t, err)

	_, err = PostWeightLoss(db, logger, WeightLossInput{
		DriverId: driver.Id,
		Quantity: dec(25),
		Reason:   models.SubTypeWastage,
	})
	assert.ErrorIs(t, err, utils.ErrorInsufficientStock)

	_, err = PostWeightLoss(db, logger, WeightLossInput{
		DriverId: driver.Id,
		Quantity: dec(5),
		Reason:   models.SubTypeWastage,
	})
	require.NoError(t, err)

	stock, err := DriverStock(db, driver.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 15, stock, "driver stock")
}

func TestPostPalti_MovesStockBetweenDrivers(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 0)
	sender := seedDriver(t, db, "d1")
	receiver := seedDriver(t, db, "d2")

	_, err := PostBuy(db, logger, BuyInput{
		DriverId:    sender.Id,
		Quantity:    dec(30),
		TotalAmount: dec(2700),
	})
	require.NoError(t, err)

	_, err = PostPalti(db, logger, PaltiInput{
		DriverId: sender.Id,
		Action:   models.PaltiActionSubtract,
		Quantity: dec(10),
	})
	require.NoError(t, err)
	_, err = PostPalti(db, logger, PaltiInput{
		DriverId: receiver.Id,
		Action:   models.PaltiActionAdd,
		Quantity: dec(10),
	})
	require.NoError(t, err)

	stocks, err := AllDriverStocks(db)
	require.NoError(t, err)
	requireDecimalEqual(t, 20, stocks[sender.Id], "sender stock")
	requireDecimalEqual(t, 10, stocks[receiver.Id], "receiver stock")
}
