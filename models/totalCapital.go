package models

import (
	"errors"
	"time"

	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalCapital is a singleton row holding the physical cash position.
// TotalCash is the full cash box; TodayCash accumulates only the increments
// received since the start of the current calendar day. The row id comes from
// TOTAL_CASH_ID so every environment pins its own row.
type TotalCapital struct {
	Base
	TotalCash         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_cash"`
	TodayCash         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"today_cash"`
	CashLastUpdatedAt *time.Time      `json:"cash_last_updated_at"`
}

func GetTotalCapital(db *gorm.DB, id string) (*TotalCapital, error) {
	var capital TotalCapital
	if err := db.First(&capital, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorTotalCapitalNotFound
		}
		return nil, err
	}
	return &capital, nil
}
