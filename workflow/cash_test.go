package workflow

import (
	"testing"
	"time"

	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCashDelta_RejectsOverdraw(t *testing.T) {
	db := newTestDB(t)
	seedCapital(t, db, 100)

	err := applyCashDelta(db, dec(-150))
	assert.ErrorIs(t, err, utils.ErrorInsufficientCash)
	requireDecimalEqual(t, 100, reloadCapital(t, db).TotalCash, "total cash")
}

func TestApplyCashDelta_RequiresConfiguredSingleton(t *testing.T) {
	db := newTestDB(t)
	t.Setenv("TOTAL_CASH_ID", "")

	err := applyCashDelta(db, dec(10))
	assert.ErrorIs(t, err, utils.ErrorTotalCashNotConfigured)
}

func TestApplyCashDelta_TodayCashAccumulatesSameDay(t *testing.T) {
	db := newTestDB(t)
	seedCapital(t, db, 1000)

	require.NoError(t, applyCashDelta(db, dec(300)))
	require.NoError(t, applyCashDelta(db, dec(200)))

	capital := reloadCapital(t, db)
	requireDecimalEqual(t, 1500, capital.TotalCash, "total cash")
	requireDecimalEqual(t, 500, capital.TodayCash, "today cash")
	require.NotNil(t, capital.CashLastUpdatedAt)
}

func TestApplyCashDelta_NewDayResetsTodayCash(t *testing.T) {
	db := newTestDB(t)
	capital := seedCapital(t, db, 1000)

	// Pretend yesterday's postings left todayCash at 400.
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&models.TotalCapital{}).Where("id = ?", capital.Id).
		Updates(map[string]interface{}{
			"today_cash":           dec(400),
			"cash_last_updated_at": &yesterday,
		}).Error)

	require.NoError(t, applyCashDelta(db, dec(250)))

	got := reloadCapital(t, db)
	requireDecimalEqual(t, 1250, got.TotalCash, "total cash")
	requireDecimalEqual(t, 250, got.TodayCash, "today cash resets to the new delta")
}

func TestApplyCashDelta_DecrementClampsTodayCashAtZero(t *testing.T) {
	db := newTestDB(t)
	seedCapital(t, db, 1000)

	require.NoError(t, applyCashDelta(db, dec(100)))
	require.NoError(t, applyCashDelta(db, dec(-300)))

	capital := reloadCapital(t, db)
	requireDecimalEqual(t, 800, capital.TotalCash, "total cash")
	requireDecimalEqual(t, 0, capital.TodayCash, "today cash clamps at zero")
}

func TestResetTodayCashIfStale(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	capital := seedCapital(t, db, 1000)

	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&models.TotalCapital{}).Where("id = ?", capital.Id).
		Updates(map[string]interface{}{
			"today_cash":           dec(400),
			"cash_last_updated_at": &yesterday,
		}).Error)

	require.NoError(t, ResetTodayCashIfStale(db, logger))
	requireDecimalEqual(t, 0, reloadCapital(t, db).TodayCash, "today cash after rollover")
	requireDecimalEqual(t, 1000, reloadCapital(t, db).TotalCash, "total cash untouched")

	// Same-day figures stay put.
	require.NoError(t, applyCashDelta(db, dec(50)))
	require.NoError(t, ResetTodayCashIfStale(db, logger))
	requireDecimalEqual(t, 50, reloadCapital(t, db).TodayCash, "fresh today cash survives")
}

func TestPostCashAdjustment_SignedAmount(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	seedCapital(t, db, 1000)

	txn, err := PostCashAdjustment(db, logger, CashAdjustmentInput{Amount: dec(-200), Details: "till recount"})
	require.NoError(t, err)
	requireDecimalEqual(t, 200, txn.TotalAmount, "recorded magnitude")
	requireDecimalEqual(t, -200, txn.AppliedCashDelta, "stored delta")
	requireDecimalEqual(t, 800, reloadCapital(t, db).TotalCash, "total cash")

	_, err = PostCashAdjustment(db, logger, CashAdjustmentInput{Amount: decimal.Zero})
	assert.ErrorIs(t, err, utils.ErrorInvalidAmount)
}
