package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"github.com/mandihub/mandi_backend/workflow"
)

func CreateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	if input.Mobile != "" {
		if err := utils.ValidatePhoneNumber(input.Mobile, utils.CountryCode); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	customer := models.Customer{
		Name:    input.Name,
		Mobile:  input.Mobile,
		Address: input.Address,
		Balance: input.OpeningBalance,
	}
	if err := config.GetDB().Create(&customer).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func ListCustomers(c *gin.Context) {
	customers, err := models.ListCustomers(config.GetDB(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// ListDueCustomers is the collection worklist: everyone with money still out.
func ListDueCustomers(c *gin.Context) {
	customers, err := models.ListDueCustomers(config.GetDB())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func GetCustomer(c *gin.Context) {
	customer, err := models.GetCustomerById(config.GetDB(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

type updateCustomerInput struct {
	Name    *string `json:"name"`
	Mobile  *string `json:"mobile"`
	Address *string `json:"address"`
}

// UpdateCustomer patches contact details only. Balance moves exclusively
// through posted transactions.
func UpdateCustomer(c *gin.Context) {
	var input updateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()
	customer, err := models.GetCustomerById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Mobile != nil {
		if *input.Mobile != "" {
			if err := utils.ValidatePhoneNumber(*input.Mobile, utils.CountryCode); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		customer.Mobile = *input.Mobile
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}

	if err := db.Save(customer).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetCustomerLedger returns the customer's statement: current balance plus
// every transaction posted against them, newest first.
func GetCustomerLedger(c *gin.Context) {
	db := config.GetDB()
	customer, err := models.GetCustomerById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	filter := models.TransactionFilter{
		CustomerId: customer.Id,
		Limit:      intQuery(c, "limit", config.SearchLimit),
		Offset:     intQuery(c, "offset", 0),
	}
	if from, ok := dateQuery(c, "from"); ok {
		filter.From = &from
	}
	if to, ok := dateQuery(c, "to"); ok {
		filter.To = &to
	}
	txns, total, err := models.ListTransactions(db, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":     customer,
		"transactions": txns,
		"total":        total,
	})
}

func CreateAdvancePayment(c *gin.Context) {
	var input workflow.AdvanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	txn, err := workflow.PostAdvancePayment(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeAdvancePayment), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func CreateDebitNote(c *gin.Context) {
	var input workflow.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	txn, err := workflow.PostDebitNote(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeDebitNote), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func CreateCreditNote(c *gin.Context) {
	var input workflow.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	txn, err := workflow.PostCreditNote(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeCreditNote), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}
