package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/middlewares"
	"github.com/mandihub/mandi_backend/utils"
	"gorm.io/gorm"
)

// respondError maps ledger errors onto HTTP statuses so clients can react to
// why an operation failed: not found vs. insufficient funds vs. bad input vs.
// server misconfiguration. Unknown errors surface a generic message only.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": utils.ErrorRecordNotFound.Error()})

	case errors.Is(err, utils.ErrorRecordNotFound),
		errors.Is(err, utils.ErrorCustomerNotFound),
		errors.Is(err, utils.ErrorCompanyNotFound),
		errors.Is(err, utils.ErrorDriverNotFound),
		errors.Is(err, utils.ErrorBankNotFound),
		errors.Is(err, utils.ErrorVehicleNotFound),
		errors.Is(err, utils.ErrorTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, utils.ErrorInsufficientStock),
		errors.Is(err, utils.ErrorInsufficientCash),
		errors.Is(err, utils.ErrorInsufficientBank),
		errors.Is(err, utils.ErrorInvalidAmount),
		errors.Is(err, utils.ErrorAmbiguousCounterparty),
		errors.Is(err, utils.ErrorUnsupportedEdit),
		errors.Is(err, utils.ErrorHasTransactions),
		errors.Is(err, utils.ErrorUnsettledCashSale):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, utils.ErrorTotalCashNotConfigured),
		errors.Is(err, utils.ErrorTotalCapitalNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

	default:
		config.LogError(config.GetLogger(), "controllers", "respondError", "unexpected", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

func respondValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func recordPosting(transactionType string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	middlewares.LedgerPostingsTotal.WithLabelValues(transactionType, outcome).Inc()
}
