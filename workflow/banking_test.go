package workflow

import (
	"testing"

	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCashToBank_MovesCashIntoBank(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 5000)
	bank := seedBank(t, db, "b1", 1000)

	txn, err := PostCashToBank(db, logger, CashToBankInput{BankId: bank.Id, Amount: dec(2000)})
	require.NoError(t, err)

	requireDecimalEqual(t, 3000, reloadCapital(t, db).TotalCash, "total cash")
	requireDecimalEqual(t, 3000, reloadBank(t, db, bank.Id).Balance, "bank balance")

	var deposit models.CashToBank
	require.NoError(t, db.First(&deposit, "transaction_id = ?", txn.Id).Error)
	requireDecimalEqual(t, 2000, deposit.Amount, "deposit detail row")
}

func TestPostCashToBank_RejectsOverdraw(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 500)
	bank := seedBank(t, db, "b1", 1000)

	_, err := PostCashToBank(db, logger, CashToBankInput{BankId: bank.Id, Amount: dec(2000)})
	assert.ErrorIs(t, err, utils.ErrorInsufficientCash)

	requireDecimalEqual(t, 500, reloadCapital(t, db).TotalCash, "total cash unchanged")
	requireDecimalEqual(t, 1000, reloadBank(t, db, bank.Id).Balance, "bank unchanged")
}

func TestPostBankTransfer(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 0)
	from := seedBank(t, db, "b1", 3000)
	to := seedBank(t, db, "b2", 100)

	_, err := PostBankTransfer(db, logger, BankTransferInput{
		FromBankId: from.Id,
		ToBankId:   to.Id,
		Amount:     dec(1200),
	})
	require.NoError(t, err)

	requireDecimalEqual(t, 1800, reloadBank(t, db, from.Id).Balance, "source bank")
	requireDecimalEqual(t, 1300, reloadBank(t, db, to.Id).Balance, "target bank")

	_, err = PostBankTransfer(db, logger, BankTransferInput{
		FromBankId: from.Id,
		ToBankId:   from.Id,
		Amount:     dec(100),
	})
	assert.ErrorIs(t, err, utils.ErrorBankNotFound)

	_, err = PostBankTransfer(db, logger, BankTransferInput{
		FromBankId: from.Id,
		ToBankId:   to.Id,
		Amount:     dec(5000),
	})
	assert.ErrorIs(t, err, utils.ErrorInsufficientBank)
}

func TestDeleteBankTransfer_RestoresBothSides(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 0)
	from := seedBank(t, db, "b1", 3000)
	to := seedBank(t, db, "b2", 100)

	txn, err := PostBankTransfer(db, logger, BankTransferInput{
		FromBankId: from.Id,
		ToBankId:   to.Id,
		Amount:     dec(1200),
	})
	require.NoError(t, err)

	require.NoError(t, DeleteTransaction(db, logger, txn.Id))
	requireDecimalEqual(t, 3000, reloadBank(t, db, from.Id).Balance, "source bank restored")
	requireDecimalEqual(t, 100, reloadBank(t, db, to.Id).Balance, "target bank restored")
}

func TestPostExpense_CashAndBank(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 5000)
	bank := seedBank(t, db, "b1", 1000)

	cashExp, err := PostExpense(db, logger, ExpenseInput{Title: "tyre repair", Amount: dec(700), Type: models.ExpenseTypeCash})
	require.NoError(t, err)
	requireDecimalEqual(t, 4300, reloadCapital(t, db).TotalCash, "cash after expense")

	_, err = PostExpense(db, logger, ExpenseInput{Title: "insurance", Amount: dec(400), Type: models.ExpenseTypeBank, BankId: bank.Id})
	require.NoError(t, err)
	requireDecimalEqual(t, 600, reloadBank(t, db, bank.Id).Balance, "bank after expense")
	requireDecimalEqual(t, 4300, reloadCapital(t, db).TotalCash, "cash untouched by bank expense")

	// Deleting the expense removes the mirror transaction and the detail row.
	require.NoError(t, DeleteExpense(db, logger, cashExp.Id))
	requireDecimalEqual(t, 5000, reloadCapital(t, db).TotalCash, "cash restored")
	var count int64
	require.NoError(t, db.Model(&models.Expense{}).Where("id = ?", cashExp.Id).Count(&count).Error)
	assert.Equal(t, int64(0), count, "expense row removed")
}

func TestEditExpense_RepostsTheDifference(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 5000)

	exp, err := PostExpense(db, logger, ExpenseInput{Title: "fuel drums", Amount: dec(700), Type: models.ExpenseTypeCash})
	require.NoError(t, err)

	_, err = EditExpense(db, logger, exp.Id, "fuel drums", dec(900), "")
	require.NoError(t, err)

	requireDecimalEqual(t, 4100, reloadCapital(t, db).TotalCash, "cash reflects new amount")
}

func TestPostFuel_UpdatesOdometerOnly(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 5000)
	driver := seedDriver(t, db, "d1")
	vehicle := &models.Vehicle{Name: "tata-407", RegistrationNumber: "MH12AB1234"}
	require.NoError(t, db.Create(vehicle).Error)

	km := dec(45210)
	_, err := PostFuel(db, logger, FuelInput{
		DriverId:    driver.Id,
		VehicleId:   vehicle.Id,
		Litres:      dec(40),
		TotalAmount: dec(3800),
		CurrentKm:   &km,
	})
	require.NoError(t, err)

	got, err := models.GetVehicleById(db, vehicle.Id)
	require.NoError(t, err)
	requireDecimalEqual(t, 45210, got.CurrentKm, "odometer")
	// Fuel is a log entry: the cash box does not move.
	requireDecimalEqual(t, 5000, reloadCapital(t, db).TotalCash, "cash untouched")
}

func TestPostFuel_KeepsFieldContext(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 5000)
	driver := seedDriver(t, db, "d1")
	vehicle := &models.Vehicle{Name: "tata-407", RegistrationNumber: "MH12AB1234"}
	require.NoError(t, db.Create(vehicle).Error)

	fuel, err := PostFuel(db, logger, FuelInput{
		DriverId:    driver.Id,
		VehicleId:   vehicle.Id,
		Litres:      dec(30),
		TotalAmount: dec(2850),
		ImageUrl:    "https://cdn.example.com/receipts/f-90211.jpg",
		Location:    "HP pump, Chakan bypass",
		GpsLat:      18.7606,
		GpsLng:      73.8636,
	})
	require.NoError(t, err)

	got, err := models.GetTransactionById(db, fuel.Id)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/receipts/f-90211.jpg", got.ImageUrl, "receipt url")
	assert.Equal(t, "HP pump, Chakan bypass", got.Location, "location")
	assert.Equal(t, 18.7606, got.GpsLat, "latitude")
	assert.Equal(t, 73.8636, got.GpsLng, "longitude")
	assert.False(t, got.Date.IsZero(), "business date defaulted")
}

func TestDriverProfile_CarriesSalaryAndVehicle(t *testing.T) {
	db := newTestDB(t)
	vehicle := &models.Vehicle{Name: "tata-407", RegistrationNumber: "MH12XY0007", Status: models.VehicleStatusActive}
	require.NoError(t, db.Create(vehicle).Error)

	driver := &models.User{
		Name:         "d1",
		Mobile:       "d1-mobile",
		PasswordHash: "x",
		Role:         models.UserRoleDriver,
		Status:       models.UserStatusActive,
		BaseSalary:   dec(12000),
		VehicleId:    vehicle.Id,
	}
	require.NoError(t, db.Create(driver).Error)

	got := reloadDriver(t, db, driver.Id)
	requireDecimalEqual(t, 12000, got.BaseSalary, "base salary")
	assert.Equal(t, vehicle.Id, got.VehicleId, "assigned vehicle")
}
