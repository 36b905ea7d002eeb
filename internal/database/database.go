package database

import (
	"fmt"

	"github.com/tourdesk/core/internal/config"
	"github.com/tourdesk/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.Database.DSNValue(),
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

// Migrate runs GORM auto-migration for all models. The product↔tag join
// table is registered first so the relation reads and the link writes share
// the same product_id/tag_id columns.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.ProductModel{}, "Tags", &models.ProductTagModel{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.AdminModel{},
		&models.CategoryModel{},
		&models.TagModel{},
		&models.ProductModel{},
		&models.ProductImageModel{},
		&models.ItineraryModel{},
		&models.PriceOptionModel{},
		&models.ProductTagModel{},
		&models.CurationModel{},
		&models.CurationProductModel{},
		&models.BannerModel{},
		&models.QuickIconModel{},
		&models.BookingModel{},
		&models.InquiryModel{},
		&models.BlogPostModel{},
	)
}
