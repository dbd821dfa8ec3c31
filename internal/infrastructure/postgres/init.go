package postgres

import (
	"log"

	"github.com/LavaJover/shvark-payment-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.PaymentDB.Dsn()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB from gorm.DB: %v\n", err)
	}
	if cfg.PaymentDB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.PaymentDB.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.PaymentDB.MaxOpenConns / 2)
	}

	return db
}
