// seed-admin creates or updates the admin console user and makes sure the
// cash singleton row exists.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... TOTAL_CASH_ID=... go run ./cmd/seed-admin
package main

import (
	"fmt"
	"os"

	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/utils"
	"gorm.io/gorm"
)

const (
	adminMobile   = "9999999999"
	adminPassword = "M@ndiAdmin"
	adminName     = "Mandi Admin"
)

func main() {
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable(db)

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	hashedStr := string(hashed)

	var existing models.User
	err = db.Model(&models.User{}).Where("mobile = ?", adminMobile).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		u := models.User{
			Name:         adminName,
			Mobile:       adminMobile,
			PasswordHash: hashedStr,
			Role:         models.UserRoleAdmin,
			Status:       models.UserStatusActive,
		}
		if err := db.Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user: mobile=%q (role=ADMIN)\n", adminMobile)
	} else {
		if err := db.Model(&models.User{}).Where("mobile = ?", adminMobile).Updates(map[string]any{
			"name":          adminName,
			"password_hash": hashedStr,
			"role":          models.UserRoleAdmin,
			"status":        models.UserStatusActive,
		}).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated admin user: mobile=%q (role=ADMIN)\n", adminMobile)
	}

	capitalId := config.TotalCashId()
	if capitalId == "" {
		fmt.Fprintln(os.Stderr, "TOTAL_CASH_ID is not set; skipping cash singleton seed.")
		os.Exit(2)
	}

	var capital models.TotalCapital
	err = db.First(&capital, "id = ?", capitalId).Error
	if err == gorm.ErrRecordNotFound {
		capital = models.TotalCapital{}
		capital.Id = capitalId
		if err := db.Create(&capital).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create cash singleton: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created cash singleton: id=%q\n", capitalId)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "failed to lookup cash singleton: %v\n", err)
		os.Exit(1)
	} else {
		fmt.Printf("Cash singleton already exists: id=%q\n", capitalId)
	}
}
