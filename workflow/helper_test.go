package workflow

import (
	"fmt"
	"io"
	"testing"

	"github.com/mandihub/mandi_backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testCapitalId = "total-cash-test"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("TOTAL_CASH_ID", testCapitalId)

	// A named shared-cache DB so every pooled connection sees the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	models.MigrateTable(db)
	return db
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func seedCapital(t *testing.T, db *gorm.DB, totalCash int64) *models.TotalCapital {
	t.Helper()
	capital := &models.TotalCapital{TotalCash: decimal.NewFromInt(totalCash)}
	capital.Id = testCapitalId
	require.NoError(t, db.Create(capital).Error)
	return capital
}

func seedDriver(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	driver := &models.User{
		Name:         name,
		Mobile:       name + "-mobile",
		PasswordHash: "x",
		Role:         models.UserRoleDriver,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(driver).Error)
	return driver
}

func seedCustomer(t *testing.T, db *gorm.DB, name string, balance int64) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name, Balance: decimal.NewFromInt(balance)}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedCompany(t *testing.T, db *gorm.DB, name string, amountDue int64) *models.Company {
	t.Helper()
	company := &models.Company{Name: name, AmountDue: decimal.NewFromInt(amountDue)}
	require.NoError(t, db.Create(company).Error)
	return company
}

func seedBank(t *testing.T, db *gorm.DB, name string, balance int64) *models.Bank {
	t.Helper()
	bank := &models.Bank{Name: name, Balance: decimal.NewFromInt(balance)}
	require.NoError(t, db.Create(bank).Error)
	return bank
}

func reloadCustomer(t *testing.T, db *gorm.DB, id string) *models.Customer {
	t.Helper()
	c, err := models.GetCustomerById(db, id)
	require.NoError(t, err)
	return c
}

func reloadCompany(t *testing.T, db *gorm.DB, id string) *models.Company {
	t.Helper()
	c, err := models.GetCompanyById(db, id)
	require.NoError(t, err)
	return c
}

func reloadBank(t *testing.T, db *gorm.DB, id string) *models.Bank {
	t.Helper()
	b, err := models.GetBankById(db, id)
	require.NoError(t, err)
	return b
}

func reloadCapital(t *testing.T, db *gorm.DB) *models.TotalCapital {
	t.Helper()
	capital, err := models.GetTotalCapital(db, testCapitalId)
	require.NoError(t, err)
	return capital
}

func reloadDriver(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	d, err := models.GetUserById(db, id)
	require.NoError(t, err)
	return d
}

func requireDecimalEqual(t *testing.T, expected int64, actual decimal.Decimal, msg string) {
	t.Helper()
	if !actual.Equal(decimal.NewFromInt(expected)) {
		t.Fatalf("%s: expected %d, got %s", msg, expected, actual)
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
