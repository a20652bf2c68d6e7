package models

import (
	"errors"

	"github.com/mandihub/mandi_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is a buyer on credit. Balance is the receivable: positive means
// the customer owes the business.
type Customer struct {
	Base
	Name    string          `gorm:"size:100;not null" json:"name"`
	Mobile  string          `gorm:"size:20" json:"mobile"`
	Address string          `gorm:"size:255" json:"address"`
	Balance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"balance"`
}

type NewCustomer struct {
	Name           string          `json:"name" binding:"required"`
	Mobile         string          `json:"mobile"`
	Address        string          `json:"address"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

func GetCustomerById(db *gorm.DB, id string) (*Customer, error) {
	var customer Customer
	if err := db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func ListCustomers(db *gorm.DB, search string) ([]Customer, error) {
	var customers []Customer
	q := db.Order("name")
	if search != "" {
		q = q.Where("name LIKE ? OR mobile LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	err := q.Find(&customers).Error
	return customers, err
}

// ListDueCustomers returns customers still owing money, biggest debt first.
func ListDueCustomers(db *gorm.DB) ([]Customer, error) {
	var customers []Customer
	err := db.Where("balance > 0").Order("balance DESC").Find(&customers).Error
	return customers, err
}
