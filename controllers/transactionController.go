package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/middlewares"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/workflow"
)

// actingDriverId resolves the driver a posting is for: drivers always act as
// themselves, admins may post on behalf of any driver.
func actingDriverId(c *gin.Context, requested string) string {
	claim := middlewares.CtxValue(c.Request.Context())
	if claim != nil && claim.Role == string(models.UserRoleDriver) {
		return claim.ID
	}
	return requested
}

func CreateSell(c *gin.Context) {
	var input workflow.SellInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	input.DriverId = actingDriverId(c, input.DriverId)

	txn, err := workflow.PostSell(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeSell), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func CreateBuy(c *gin.Context) {
	var input workflow.BuyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	input.DriverId = actingDriverId(c, input.DriverId)

	txn, err := workflow.PostBuy(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeBuy), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func CreateShopBuy(c *gin.Context) {
	var input workflow.ShopBuyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	input.DriverId = actingDriverId(c, input.DriverId)

	txn, err := workflow.PostShopBuy(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeShopBuy), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func CreatePalti(c *gin.Context) {
	var input workflow.PaltiInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	txn, err := workflow.PostPalti(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypePalti), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func CreateWeightLoss(c *gin.Context) {
	var input workflow.WeightLossInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	input.DriverId = actingDriverId(c, input.DriverId)

	txn, err := workflow.PostWeightLoss(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeWeightLoss), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func CreateFuel(c *gin.Context) {
	var input workflow.FuelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	input.DriverId = actingDriverId(c, input.DriverId)

	txn, err := workflow.PostFuel(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeFuel), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func GetTransaction(c *gin.Context) {
	txn, err := models.GetTransactionById(config.GetDB(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func ListTransactions(c *gin.Context) {
	filter := models.TransactionFilter{
		DriverId:   c.Query("driver_id"),
		CustomerId: c.Query("customer_id"),
		CompanyId:  c.Query("company_id"),
		Limit:      intQuery(c, "limit", config.SearchLimit),
		Offset:     intQuery(c, "offset", 0),
	}
	if t := c.Query("type"); t != "" {
		filter.Types = []models.TransactionType{models.TransactionType(t)}
	}
	if from, ok := dateQuery(c, "from"); ok {
		filter.From = &from
	}
	if to, ok := dateQuery(c, "to"); ok {
		filter.To = &to
	}

	txns, total, err := models.ListTransactions(config.GetDB(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns, "total": total})
}

// GetRecentTransactions serves the driver app's activity feed: the caller's
// last 20 postings. Admins may pass driver_id to see any driver's feed.
func GetRecentTransactions(c *gin.Context) {
	filter := models.TransactionFilter{
		DriverId: actingDriverId(c, c.Query("driver_id")),
		Limit:    20,
	}
	txns, _, err := models.ListTransactions(config.GetDB(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

func UpdateTransaction(c *gin.Context) {
	var input workflow.EditTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	txn, err := workflow.EditTransaction(config.GetDB(), config.GetLogger(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func DeleteTransaction(c *gin.Context) {
	err := workflow.DeleteTransaction(config.GetDB(), config.GetLogger(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// dateQuery accepts YYYY-MM-DD in the server's local day boundaries.
func dateQuery(c *gin.Context, key string) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
