package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/fleetops/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250812_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.BreakRequest{},
					&models.BreakdownReport{}, &models.StormUser{})
			},
		},
		{
			ID: "20250819_add_email_logs",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.EmailLog{})
			},
		},
	})
	return m.Migrate()
}
