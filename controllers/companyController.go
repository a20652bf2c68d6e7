package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
)

func CreateCompany(c *gin.Context) {
	var input models.NewCompany
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	company := models.Company{
		Name:      input.Name,
		Mobile:    input.Mobile,
		Address:   input.Address,
		AmountDue: input.OpeningDue,
	}
	if err := config.GetDB().Create(&company).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func ListCompanies(c *gin.Context) {
	companies, err := models.ListCompanies(config.GetDB(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func GetCompany(c *gin.Context) {
	company, err := models.GetCompanyById(config.GetDB(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

type updateCompanyInput struct {
	Name    *string `json:"name"`
	Mobile  *string `json:"mobile"`
	Address *string `json:"address"`
}

// UpdateCompany patches contact details only. AmountDue moves exclusively
// through posted transactions.
func UpdateCompany(c *gin.Context) {
	var input updateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()
	company, err := models.GetCompanyById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.Mobile != nil {
		company.Mobile = *input.Mobile
	}
	if input.Address != nil {
		company.Address = *input.Address
	}

	if err := db.Save(company).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// DeleteCompany removes a supplier with no ledger history.
func DeleteCompany(c *gin.Context) {
	db := config.GetDB()
	company, err := models.GetCompanyById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var count int64
	if err := db.Model(&models.Transaction{}).Where("company_id = ?", company.Id).Count(&count).Error; err != nil {
		respondError(c, err)
		return
	}
	if count > 0 {
		respondError(c, utils.ErrorHasTransactions)
		return
	}

	if err := db.Delete(&models.Company{}, "id = ?", company.Id).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetCompanyLedger returns the supplier statement: current payable plus
// every transaction posted against the company.
func GetCompanyLedger(c *gin.Context) {
	db := config.GetDB()
	company, err := models.GetCompanyById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	filter := models.TransactionFilter{
		CompanyId: company.Id,
		Limit:     intQuery(c, "limit", config.SearchLimit),
		Offset:    intQuery(c, "offset", 0),
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
		"company":      company,
		"transactions": txns,
		"total":        total,
	})
}
