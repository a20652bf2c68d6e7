package models

import (
	"errors"

	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Company is a supplier. AmountDue is the payable: positive means the
// business owes the company.
type Company struct {
	Base
	Name      string          `gorm:"size:100;not null" json:"name"`
	Mobile    string          `gorm:"size:20" json:"mobile"`
	Address   string          `gorm:"size:255" json:"address"`
	AmountDue decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount_due"`
}

type NewCompany struct {
	Name       string          `json:"name" binding:"required"`
	Mobile     string          `json:"mobile"`
	Address    string          `json:"address"`
	OpeningDue decimal.Decimal `json:"opening_due"`
}

func GetCompanyById(db *gorm.DB, id string) (*Company, error) {
	var company Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func ListCompanies(db *gorm.DB, search string) ([]Company, error) {
	var companies []Company
	q := db.Order("name")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	err := q.Find(&companies).Error
	return companies, err
}
