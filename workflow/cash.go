package workflow

import (
	"time"

	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// applyCashDelta is the only code path that mutates the total-capital row.
// A positive delta is cash coming in, a negative delta cash going out; a
// decrement that would leave totalCash negative is rejected before any write.
//
// todayCash tracks cash received since the start of the current calendar day:
// increments on the same day accumulate, the first movement on a new day
// resets the figure, and decrements clamp it at zero.
func applyCashDelta(tx *gorm.DB, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	capitalId := config.TotalCashId()
	if capitalId == "" {
		return utils.ErrorTotalCashNotConfigured
	}

	capital, err := models.GetTotalCapital(tx, capitalId)
	if err != nil {
		return err
	}

	newTotal := capital.TotalCash.Add(delta)
	if delta.IsNegative() && newTotal.IsNegative() {
		return utils.ErrorInsufficientCash
	}

	now := time.Now()
	sameDay := capital.CashLastUpdatedAt != nil && sameCalendarDay(*capital.CashLastUpdatedAt, now)

	var newToday decimal.Decimal
	switch {
	case delta.IsPositive() && sameDay:
		newToday = capital.TodayCash.Add(delta)
	case delta.IsPositive():
		newToday = delta
	case sameDay:
		newToday = capital.TodayCash.Add(delta)
		if newToday.IsNegative() {
			newToday = decimal.Zero
		}
	default:
		newToday = decimal.Zero
	}

	return tx.Model(&models.TotalCapital{}).Where("id = ?", capital.Id).
		Updates(map[string]interface{}{
			"total_cash":           newTotal,
			"today_cash":           newToday,
			"cash_last_updated_at": &now,
		}).Error
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// ResetTodayCashIfStale zeroes todayCash once the calendar day has rolled
// over without any cash movement. Runs from the midnight scheduler and before
// serving the total-capital read.
func ResetTodayCashIfStale(db *gorm.DB, logger *logrus.Logger) error {
	capitalId := config.TotalCashId()
	if capitalId == "" {
		return utils.ErrorTotalCashNotConfigured
	}

	capital, err := models.GetTotalCapital(db, capitalId)
	if err != nil {
		config.LogError(logger, "workflow", "ResetTodayCashIfStale", "GetTotalCapital", nil, err)
		return err
	}

	if capital.TodayCash.IsZero() {
		return nil
	}
	if capital.CashLastUpdatedAt != nil && sameCalendarDay(*capital.CashLastUpdatedAt, time.Now()) {
		return nil
	}

	err = db.Model(&models.TotalCapital{}).Where("id = ?", capital.Id).
		Update("today_cash", decimal.Zero).Error
	if err != nil {
		config.LogError(logger, "workflow", "ResetTodayCashIfStale", "Update", nil, err)
	}
	return err
}
