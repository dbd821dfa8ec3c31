package logger

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WebhookEvent is one audited processor notification.
type WebhookEvent struct {
	ID                string `gorm:"primaryKey;type:uuid"`
	RequestID         string
	PaymentID         string `gorm:"index"`
	ExternalReference string `gorm:"index"`
	Status            string
	Outcome           string
	Error             string
	Payload           datatypes.JSON `gorm:"type:jsonb"`
	ReceivedAt        time.Time
	ProcessingTime    int64
}

func (WebhookEvent) TableName() string { return "webhook_events" }

type WebhookEventLogger interface {
	LogWebhookEvent(ctx context.Context, event WebhookEvent) error
}

type PGWebhookEventLogger struct {
	db *gorm.DB
}

func NewPGWebhookEventLogger(db *gorm.DB) *PGWebhookEventLogger {
	return &PGWebhookEventLogger{db: db}
}

func (l *PGWebhookEventLogger) LogWebhookEvent(ctx context.Context, event WebhookEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
