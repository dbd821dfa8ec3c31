package setup

import (
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-payment-service/internal/config"
	"github.com/LavaJover/shvark-payment-service/internal/domain"
	publisher "github.com/LavaJover/shvark-payment-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/repository"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.PaymentConfig
	DB           *gorm.DB
	Publisher    *publisher.DefaultKafkaPublisher
	Metrics      *metrics.WebhookMetrics
	Repositories *Repositories
}

type Repositories struct {
	TransactionRepo    domain.TransactionRepository
	WebhookEventLogger logger.WebhookEventLogger
}

func InitializeDependencies(cfg *config.PaymentConfig) (*Dependencies, error) {
	db := postgres.MustInitDB(cfg)

	if err := migrate.RunMigrations(db, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	var pub *publisher.DefaultKafkaPublisher
	if cfg.Notifier.Driver == notifier.DriverKafka {
		pub = publisher.NewDefaultKafkaPublisher(cfg.KafkaService.Brokers())
	}

	repos := &Repositories{
		TransactionRepo:    repository.NewDefaultTransactionRepository(db, cfg.PaymentDB.LockTimeout),
		WebhookEventLogger: logger.NewPGWebhookEventLogger(db),
	}

	return &Dependencies{
		Config:       cfg,
		DB:           db,
		Publisher:    pub,
		Metrics:      metrics.NewWebhookMetrics(nil),
		Repositories: repos,
	}, nil
}

func (d *Dependencies) Close() error {
	var errs []error
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka publisher: %w", err))
		}
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
