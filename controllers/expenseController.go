package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/workflow"
	"github.com/shopspring/decimal"
)

func CreateExpense(c *gin.Context) {
	var input workflow.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	expense, err := workflow.PostExpense(config.GetDB(), config.GetLogger(), input)
	recordPosting(string(models.TransactionTypeExpense), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

type updateExpenseInput struct {
	Title   string          `json:"title" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Details string          `json:"details"`
}

func UpdateExpense(c *gin.Context) {
	var input updateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	expense, err := workflow.EditExpense(config.GetDB(), config.GetLogger(),
		c.Param("id"), input.Title, input.Amount, input.Details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func DeleteExpense(c *gin.Context) {
	err := workflow.DeleteExpense(config.GetDB(), config.GetLogger(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func ListExpenses(c *gin.Context) {
	q := config.GetDB().Order("created_at DESC")
	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}
	if from, ok := dateQuery(c, "from"); ok {
		q = q.Where("created_at >= ?", from)
	}
	if to, ok := dateQuery(c, "to"); ok {
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		respondError(c, err)
		return
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "total": total})
}

// GetExpenseSummary totals expenses by settlement type over a date window.
func GetExpenseSummary(c *gin.Context) {
	from, to := reportWindow(c)

	var expenses []models.Expense
	err := config.GetDB().
		Where("created_at >= ? AND created_at < ?", from, to).
		Find(&expenses).Error
	if err != nil {
		respondError(c, err)
		return
	}

	cashTotal := decimal.Zero
	bankTotal := decimal.Zero
	for _, e := range expenses {
		if e.Type == models.ExpenseTypeBank {
			bankTotal = bankTotal.Add(e.Amount)
		} else {
			cashTotal = cashTotal.Add(e.Amount)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"cash_total": cashTotal,
		"bank_total": bankTotal,
		"total":      cashTotal.Add(bankTotal),
		"count":      len(expenses),
	})
}
