package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/workflow"
)

func CreatePayment(c *gin.Context) {
	var input workflow.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	payment, err := workflow.PostPayment(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypePayment), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func CreateReceivePayment(c *gin.Context) {
	var input workflow.ReceivePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	input.DriverId = actingDriverId(c, input.DriverId)

	payment, err := workflow.PostReceivePayment(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeReceivePayment), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// DeletePayment removes a payment by reversing its mirror transaction; the
// transaction delete also removes the payment row.
func DeletePayment(c *gin.Context) {
	db := config.GetDB()
	payment, err := models.GetPaymentById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if payment.TransactionId != "" {
		if err := workflow.DeleteTransaction(db, config.GetLogger(), payment.TransactionId); err != nil {
			respondError(c, err)
			return
		}
	} else if err := db.Delete(&models.Payment{}, "id = ?", payment.Id).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListReceivePayments lists inbound payments from the transaction log.
func ListReceivePayments(c *gin.Context) {
	filter := models.TransactionFilter{
		Types:      []models.TransactionType{models.TransactionTypeReceivePayment},
		DriverId:   c.Query("driver_id"),
		CustomerId: c.Query("customer_id"),
		CompanyId:  c.Query("company_id"),
		Limit:      intQuery(c, "limit", config.SearchLimit),
		Offset:     intQuery(c, "offset", 0),
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
	c.JSON(http.StatusOK, gin.H{"receive_payments": txns, "total": total})
}

func ListPayments(c *gin.Context) {
	q := config.GetDB().Order("created_at DESC")
	if entityType := c.Query("entity_type"); entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if customerId := c.Query("customer_id"); customerId != "" {
		q = q.Where("customer_id = ?", customerId)
	}
	if companyId := c.Query("company_id"); companyId != "" {
		q = q.Where("company_id = ?", companyId)
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
