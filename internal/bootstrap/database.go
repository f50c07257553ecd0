// Package bootstrap migrates the schema and seeds the default payment
// method set.
package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"zenpay/internal/models"
)

// MigrateAndSeed ensures required tables exist and inserts the default
// payment methods when the table is empty.
func MigrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.MethodConfig{}, &models.TopUpIntent{}); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	if err := seedDefaultMethods(db); err != nil {
		return fmt.Errorf("seed defaults failed: %w", err)
	}
	return nil
}

func seedDefaultMethods(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MethodConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.MethodConfig{
		{
			ID:              "telegram_stars",
			Name:            "Telegram Stars",
			Gateway:         "telegram_stars",
			MinAmountKopeks: 10000,
			MaxAmountKopeks: 10000000,
			Enabled:         true,
			SupportsInvoice: true,
			SortOrder:       1,
		},
		{
			ID:              "cryptobot",
			Name:            "Crypto Bot",
			Gateway:         "cryptobot",
			MinAmountKopeks: 10000,
			MaxAmountKopeks: 100000000,
			Enabled:         true,
			SortOrder:       2,
		},
		{
			ID:              "yookassa",
			Name:            "Bank card",
			Gateway:         "yookassa",
			MinAmountKopeks: 10000,
			MaxAmountKopeks: 100000000,
			SubOptions: models.SubOptions{
				{ID: "bank_card", Name: "Bank card"},
				{ID: "sbp", Name: "SBP"},
			},
			Enabled:   true,
			SortOrder: 3,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range defaults {
			if err := tx.Create(&defaults[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
