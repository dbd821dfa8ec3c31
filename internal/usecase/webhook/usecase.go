package usecase

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/metrics"
)

type WebhookUsecase interface {
	HandleNotification(ctx context.Context, notification domain.Notification) (*domain.ReconcileResult, error)
}

// Timeouts bound the blocking steps of one notification.
type Timeouts struct {
	// Processor lookup, bounded by the request context as well.
	Lookup time.Duration
	// Lock-transition-notify-commit unit. It runs detached from the request, so a
	// client disconnect cannot roll back a decided status change.
	Transaction time.Duration
	// Customer message. Keep it below Transaction.
	Notify time.Duration
}

type DefaultWebhookUsecase struct {
	TransactionRepo domain.TransactionRepository
	Processor       domain.PaymentProcessor
	Notifier        domain.Notifier
	EventLogger     logger.WebhookEventLogger
	Metrics         *metrics.WebhookMetrics
	Timeouts        Timeouts
	Now             func() time.Time
}

func NewDefaultWebhookUsecase(
	transactionRepo domain.TransactionRepository,
	processor domain.PaymentProcessor,
	notifier domain.Notifier,
	eventLogger logger.WebhookEventLogger,
	webhookMetrics *metrics.WebhookMetrics,
	timeouts Timeouts) *DefaultWebhookUsecase {

	return &DefaultWebhookUsecase{
		TransactionRepo: transactionRepo,
		Processor:       processor,
		Notifier:        notifier,
		EventLogger:     eventLogger,
		Metrics:         webhookMetrics,
		Timeouts:        timeouts,
		Now:             time.Now,
	}
}

func (uc *DefaultWebhookUsecase) now() time.Time {
	if uc.Now == nil {
		return time.Now()
	}
	return uc.Now()
}
