package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/uniease-api/internal/config"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.SalonSlot{},
		&models.SalonBooking{},
		&models.LaundryRequest{},
		&models.FoodOutlet{},
		&models.MenuItem{},
		&models.Order{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// one open cart per (user, outlet); AutoMigrate cannot express partial indexes
	return db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_cart
        ON orders (user_id, outlet_id)
        WHERE status = 'cart'
    `).Error
}
