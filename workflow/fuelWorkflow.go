package workflow

import (
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FuelInput logs a refuelling stop. Fuel does not move any ledger balance;
// the vehicle odometer is advanced when a reading is supplied. The odometer
// is a point-in-time reading, so deleting the transaction later does not
// rewind it.
type FuelInput struct {
	DriverId    string           `json:"driver_id" binding:"required"`
	VehicleId   string           `json:"vehicle_id" binding:"required"`
	Litres      decimal.Decimal  `json:"litres" binding:"required"`
	Rate        decimal.Decimal  `json:"rate"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	CurrentKm   *decimal.Decimal `json:"current_km"`
	Details     string           `json:"details"`
	ImageUrl    string           `json:"image_url"`
	Location    string           `json:"location"`
	GpsLat      float64          `json:"gps_lat"`
	GpsLng      float64          `json:"gps_lng"`
}

func PostFuel(db *gorm.DB, logger *logrus.Logger, input FuelInput) (*models.Transaction, error) {
	if !input.Litres.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypeFuel,
		DriverId:    input.DriverId,
		VehicleId:   input.VehicleId,
		Quantity:    input.Litres,
		Rate:        input.Rate,
		TotalAmount: input.TotalAmount,
		Unit:        models.UnitLitre,
		Details:     input.Details,
		ImageUrl:    input.ImageUrl,
		Location:    input.Location,
		GpsLat:      input.GpsLat,
		GpsLng:      input.GpsLng,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostFuel", "computeAppliedDeltas", input, err)
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx); err != nil {
			config.LogError(logger, "workflow", "PostFuel", "AcquirePostingLock", nil, err)
			return err
		}
		defer ReleasePostingLock(tx)

		vehicle, err := models.GetVehicleById(tx, input.VehicleId)
		if err != nil {
			config.LogError(logger, "workflow", "PostFuel", "GetVehicleById", input, err)
			return err
		}

		if err := preparePosting(tx, txn); err != nil {
			config.LogError(logger, "workflow", "PostFuel", "preparePosting", txn, err)
			return err
		}

		if err := tx.Create(txn).Error; err != nil {
			config.LogError(logger, "workflow", "PostFuel", "CreateTransaction", txn, err)
			return err
		}

		if input.CurrentKm != nil {
			err = tx.Model(&models.Vehicle{}).Where("id = ?", vehicle.Id).
				Update("current_km", *input.CurrentKm).Error
			if err != nil {
				config.LogError(logger, "workflow", "PostFuel", "UpdateVehicleKm", input, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
