package main

import (
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"frota/models"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others.
		// Referenced tables first so FKs can be applied safely.
		if err := db.AutoMigrate(&models.Partner{}); err != nil {
			log.Printf("migration warning (partners): %v", err)
		}
		if err := db.AutoMigrate(&models.Driver{}); err != nil {
			log.Printf("migration warning (drivers): %v", err)
		}
		if err := db.AutoMigrate(&models.Vendor{}); err != nil {
			log.Printf("migration warning (vendors): %v", err)
		}
		if err := db.AutoMigrate(&models.Vehicle{}); err != nil {
			log.Printf("migration warning (vehicles): %v", err)
		}
		if err := db.AutoMigrate(&models.Rental{}); err != nil {
			log.Printf("migration warning (rentals): %v", err)
		}
		if err := db.AutoMigrate(&models.Expense{}); err != nil {
			log.Printf("migration warning (expenses): %v", err)
		}
		if err := db.AutoMigrate(&models.RentPayment{}); err != nil {
			log.Printf("migration warning (rent_payments): %v", err)
		}
		if err := db.AutoMigrate(&models.CapitalEntry{}); err != nil {
			log.Printf("migration warning (capital_entries): %v", err)
		}
		if err := db.AutoMigrate(&models.CashTxn{}); err != nil {
			log.Printf("migration warning (cash_txns): %v", err)
		}
	}
	seedDB()
}

// seedDB inserts the master rows a fresh install needs: the capital partners
// and a default vendor. Each insert is guarded so reruns are no-ops.
func seedDB() {
	partners := []models.Partner{
		{Name: "Socio A"},
		{Name: "Socio B"},
	}
	for _, p := range partners {
		var cnt int64
		db.Model(&models.Partner{}).Where("name = ?", p.Name).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&p).Error; err != nil {
				log.Printf("failed to seed partner %s: %v", p.Name, err)
			}
		}
	}

	vendors := []models.Vendor{
		{Name: "Oficina Central", Contact: "oficina@example.com"},
	}
	for _, v := range vendors {
		var cnt int64
		db.Model(&models.Vendor{}).Where("name = ?", v.Name).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&v).Error; err != nil {
				log.Printf("failed to seed vendor %s: %v", v.Name, err)
			}
		}
	}
}
