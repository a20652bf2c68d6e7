package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/workflow"
)

func CreateBank(c *gin.Context) {
	var input models.NewBank
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	bank := models.Bank{
		Name:          input.Name,
		AccountNumber: input.AccountNumber,
		Balance:       input.OpeningBalance,
	}
	if err := config.GetDB().Create(&bank).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bank)
}

func ListBanks(c *gin.Context) {
	banks, err := models.ListBanks(config.GetDB())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banks": banks})
}

func GetBank(c *gin.Context) {
	bank, err := models.GetBankById(config.GetDB(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bank)
}

type updateBankInput struct {
	Name          *string `json:"name"`
	AccountNumber *string `json:"account_number"`
}

// UpdateBank patches account details only. Balance moves through posted
// transactions or an explicit adjustment.
func UpdateBank(c *gin.Context) {
	var input updateBankInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()
	bank, err := models.GetBankById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Name != nil {
		bank.Name = *input.Name
	}
	if input.AccountNumber != nil {
		bank.AccountNumber = *input.AccountNumber
	}

	if err := db.Save(bank).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bank)
}

func CreateCashToBank(c *gin.Context) {
	var input workflow.CashToBankInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	txn, err := workflow.PostCashToBank(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeCashToBank), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func CreateBankTransfer(c *gin.Context) {
	var input workflow.BankTransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	txn, err := workflow.PostBankTransfer(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeBankToBank), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func AdjustBankBalance(c *gin.Context) {
	var input workflow.BankAdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	txn, err := workflow.PostBankAdjustment(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeUpdateBank), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func AdjustCash(c *gin.Context) {
	var input workflow.CashAdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	txn, err := workflow.PostCashAdjustment(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeUpdateCash), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// GetTotalCapital serves the cash position. A stale todayCash from a previous
// calendar day is zeroed before serving so the figure always means "today".
func GetTotalCapital(c *gin.Context) {
	db := config.GetDB()
	logger := config.GetLogger()

	if err := workflow.ResetTodayCashIfStale(db, logger); err != nil {
		respondError(c, err)
		return
	}

	capitalId := config.TotalCashId()
	capital, err := models.GetTotalCapital(db, capitalId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, capital)
}
