package models

import (
	"log"

	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) {
	err := db.AutoMigrate(
		&User{},
		&Customer{}, &Company{}, &Bank{}, &Vehicle{},
		&TotalCapital{},
		&Transaction{},
		&Expense{}, &Payment{}, &CashToBank{},
		&BorrowedMoney{},
		&Notification{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
