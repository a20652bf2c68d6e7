package workflow

import (
	"testing"

	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditTransaction_AdjustsByDifference(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 1000)
	customer := seedCustomer(t, db, "c1", 0)

	note, err := PostDebitNote(db, logger, NoteInput{CustomerId: customer.Id, Amount: dec(100)})
	require.NoError(t, err)
	requireDecimalEqual(t, 100, reloadCustomer(t, db, customer.Id).Balance, "balance after note")

	amount := dec(250)
	edited, err := EditTransaction(db, logger, note.Id, EditTransactionInput{TotalAmount: &amount})
	require.NoError(t, err)
	assert.Equal(t, note.Id, edited.Id, "row keeps its id")

	// Net effect equals the new amount, not old plus new.
	requireDecimalEqual(t, 250, reloadCustomer(t, db, customer.Id).Balance, "balance after edit")
	requireDecimalEqual(t, 250, edited.AppliedCustomerDelta, "stored delta recomputed")
}

func TestEditSell_RepricesEveryLeg(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 1000)
	driver := seedDriver(t, db, "d1")
	customer := seedCustomer(t, db, "c1", 0)

	_, err := PostBuy(db, logger, BuyInput{DriverId: driver.Id, Quantity: dec(100), TotalAmount: dec(9000)})
	require.NoError(t, err)

	sell, err := PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		CustomerId:  customer.Id,
		Quantity:    dec(40),
		TotalAmount: dec(4000),
		PaymentCash: dec(2000),
	})
	require.NoError(t, err)
	requireDecimalEqual(t, 2000, reloadCustomer(t, db, customer.Id).Balance, "tab after sell")
	requireDecimalEqual(t, 3000, reloadCapital(t, db).TotalCash, "cash after sell")

	qty := dec(30)
	amount := dec(3000)
	cash := dec(1000)
	_, err = EditTransaction(db, logger, sell.Id, EditTransactionInput{
		Quantity:    &qty,
		TotalAmount: &amount,
		PaymentCash: &cash,
	})
	require.NoError(t, err)

	stock, err := DriverStock(db, driver.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 70, stock, "stock after edit")
	requireDecimalEqual(t, 2000, reloadCustomer(t, db, customer.Id).Balance, "tab after edit")
	requireDecimalEqual(t, 2000, reloadCapital(t, db).TotalCash, "cash after edit")
}

func TestEditSell_RejectsQuantityBeyondStock(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 1000)
	driver := seedDriver(t, db, "d1")
	customer := seedCustomer(t, db, "c1", 0)

	_, err := PostBuy(db, logger, BuyInput{DriverId: driver.Id, Quantity: dec(50), TotalAmount: dec(4500)})
	require.NoError(t, err)

	sell, err := PostSell(db, logger, SellInput{
		DriverId:    driver.Id,
		CustomerId:  customer.Id,
		Quantity:    dec(40),
		TotalAmount: dec(4000),
		PaymentCash: dec(4000),
	})
	require.NoError(t, err)

	// 50 bought; the row under edit is discounted, so up to 50 is fine but 60
	// is not.
	qty := dec(60)
	_, err = EditTransaction(db, logger, sell.Id, EditTransactionInput{Quantity: &qty})
	assert.ErrorIs(t, err, utils.ErrorInsufficientStock)

	// The failed edit rolled back: original figures stand.
	stock, err := DriverStock(db, driver.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 10, stock, "stock unchanged")
	requireDecimalEqual(t, 5000, reloadCapital(t, db).TotalCash, "cash unchanged")

	qty = dec(50)
	_, err = EditTransaction(db, logger, sell.Id, EditTransactionInput{Quantity: &qty})
	require.NoError(t, err)
	stock, err = DriverStock(db, driver.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 0, stock, "stock after max edit")
}

func TestEditPayment_SyncsDetailRow(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 5000)
	company := seedCompany(t, db, "co1", 5000)

	payment, err := PostPayment(db, logger, PaymentInput{CompanyId: company.Id, Amount: dec(1000)})
	require.NoError(t, err)
	requireDecimalEqual(t, 4000, reloadCompany(t, db, company.Id).AmountDue, "payable after payment")

	amount := dec(400)
	_, err = EditTransaction(db, logger, payment.TransactionId, EditTransactionInput{TotalAmount: &amount})
	require.NoError(t, err)

	requireDecimalEqual(t, 4600, reloadCompany(t, db, company.Id).AmountDue, "payable after edit")
	requireDecimalEqual(t, 4600, reloadCapital(t, db).TotalCash, "cash after edit")

	// The payment register must agree with the ledger row it mirrors.
	detail, err := models.GetPaymentById(db, payment.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 400, detail.Amount, "detail row resized")
}

func TestEditCashToBank_SyncsDepositRow(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 2000)
	bank := seedBank(t, db, "b1", 0)

	txn, err := PostCashToBank(db, logger, CashToBankInput{BankId: bank.Id, Amount: dec(500)})
	require.NoError(t, err)

	amount := dec(200)
	_, err = EditTransaction(db, logger, txn.Id, EditTransactionInput{TotalAmount: &amount})
	require.NoError(t, err)

	requireDecimalEqual(t, 200, reloadBank(t, db, bank.Id).Balance, "bank after edit")
	requireDecimalEqual(t, 1800, reloadCapital(t, db).TotalCash, "cash after edit")

	var deposit models.CashToBank
	require.NoError(t, db.First(&deposit, "transaction_id = ?", txn.Id).Error)
	requireDecimalEqual(t, 200, deposit.Amount, "deposit row resized")
}

func TestEditTransaction_RefusesAdjustmentRows(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 1000)
	bank := seedBank(t, db, "b1", 500)

	cashAdj, err := PostCashAdjustment(db, logger, CashAdjustmentInput{Amount: dec(100)})
	require.NoError(t, err)
	bankAdj, err := PostBankAdjustment(db, logger, BankAdjustmentInput{BankId: bank.Id, NewBalance: dec(700)})
	require.NoError(t, err)

	amount := dec(50)
	_, err = EditTransaction(db, logger, cashAdj.Id, EditTransactionInput{TotalAmount: &amount})
	assert.ErrorIs(t, err, utils.ErrorUnsupportedEdit)
	_, err = EditTransaction(db, logger, bankAdj.Id, EditTransactionInput{TotalAmount: &amount})
	assert.ErrorIs(t, err, utils.ErrorUnsupportedEdit)
}

func TestDeleteAdjustment_ReversesStoredDelta(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 1000)
	bank := seedBank(t, db, "b1", 500)

	// Adjustments cannot be recomputed, but their stored delta still reverses.
	adj, err := PostBankAdjustment(db, logger, BankAdjustmentInput{BankId: bank.Id, NewBalance: dec(700)})
	require.NoError(t, err)
	requireDecimalEqual(t, 200, adj.AppliedBankDelta, "delta = observed - current")
	requireDecimalEqual(t, 700, reloadBank(t, db, bank.Id).Balance, "bank after adjustment")

	require.NoError(t, DeleteTransaction(db, logger, adj.Id))
	requireDecimalEqual(t, 500, reloadBank(t, db, bank.Id).Balance, "bank after delete")
}
