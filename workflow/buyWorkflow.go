package workflow

import (
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BuyInput records stock bought from a supplier on credit. CompanyId may be
// empty for a one-off purchase that carries no payable.
type BuyInput struct {
	DriverId    string          `json:"driver_id" binding:"required"`
	CompanyId   string          `json:"company_id"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate"`
	TotalAmount decimal.Decimal `json:"total_amount" binding:"required"`
	Details     string          `json:"details"`
}

func PostBuy(db *gorm.DB, logger *logrus.Logger, input BuyInput) (*models.Transaction, error) {
	if !input.Quantity.IsPositive() || input.TotalAmount.IsNegative() {
		return nil, utils.ErrorInvalidAmount
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypeBuy,
		DriverId:    input.DriverId,
		CompanyId:   input.CompanyId,
		Quantity:    input.Quantity,
		Rate:        input.Rate,
		TotalAmount: input.TotalAmount,
		Unit:        models.UnitKg,
		Details:     input.Details,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostBuy", "computeAppliedDeltas", input, err)
		return nil, err
	}

	if err := postTransaction(db, logger, "PostBuy", txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ShopBuyInput records stock bought cash-and-carry at the shop; no payable
// and no cash movement is tracked, only the stock.
type ShopBuyInput struct {
	DriverId    string          `json:"driver_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Details     string          `json:"details"`
}

func PostShopBuy(db *gorm.DB, logger *logrus.Logger, input ShopBuyInput) (*models.Transaction, error) {
	if !input.Quantity.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypeShopBuy,
		DriverId:    input.DriverId,
		Quantity:    input.Quantity,
		Rate:        input.Rate,
		TotalAmount: input.TotalAmount,
		Unit:        models.UnitKg,
		Details:     input.Details,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostShopBuy", "computeAppliedDeltas", input, err)
		return nil, err
	}

	if err := postTransaction(db, logger, "PostShopBuy", txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// PaltiInput is one leg of an inter-driver stock transfer: SUBTRACT from the
// sending driver, ADD to the receiving driver.
type PaltiInput struct {
	DriverId string             `json:"driver_id" binding:"required"`
	Action   models.PaltiAction `json:"action" binding:"required"`
	Quantity decimal.Decimal    `json:"quantity" binding:"required"`
	Details  string             `json:"details"`
}

func PostPalti(db *gorm.DB, logger *logrus.Logger, input PaltiInput) (*models.Transaction, error) {
	if !input.Quantity.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}
	if input.Action != models.PaltiActionAdd && input.Action != models.PaltiActionSubtract {
		return nil, utils.ErrorInvalidAmount
	}

	txn := &models.Transaction{
		Type:        models.TransactionTypePalti,
		DriverId:    input.DriverId,
		Quantity:    input.Quantity,
		PaltiAction: input.Action,
		Unit:        models.UnitKg,
		Details:     input.Details,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostPalti", "computeAppliedDeltas", input, err)
		return nil, err
	}

	if err := postTransaction(db, logger, "PostPalti", txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// WeightLossInput records shrinkage. The guard compares against the current
// day's stock only: yesterday's stock has already shrunk.
type WeightLossInput struct {
	DriverId string                    `json:"driver_id" binding:"required"`
	Quantity decimal.Decimal           `json:"quantity" binding:"required"`
	Reason   models.TransactionSubType `json:"reason"`
	Details  string                    `json:"details"`
	ImageUrl string                    `json:"image_url"`
	Location string                    `json:"location"`
	GpsLat   float64                   `json:"gps_lat"`
	GpsLng   float64                   `json:"gps_lng"`
}

func PostWeightLoss(db *gorm.DB, logger *logrus.Logger, input WeightLossInput) (*models.Transaction, error) {
	if !input.Quantity.IsPositive() {
		return nil, utils.ErrorInvalidAmount
	}

	txn := &models.Transaction{
		Type:     models.TransactionTypeWeightLoss,
		SubType:  input.Reason,
		DriverId: input.DriverId,
		Quantity: input.Quantity,
		Unit:     models.UnitKg,
		Details:  input.Details,
		ImageUrl: input.ImageUrl,
		Location: input.Location,
		GpsLat:   input.GpsLat,
		GpsLng:   input.GpsLng,
	}

	if err := computeAppliedDeltas(txn); err != nil {
		config.LogError(logger, "workflow", "PostWeightLoss", "computeAppliedDeltas", input, err)
		return nil, err
	}

	if err := postTransaction(db, logger, "PostWeightLoss", txn); err != nil {
		return nil, err
	}
	return txn, nil
}
