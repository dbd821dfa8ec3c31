package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/logger"
	"github.com/google/uuid"
)

// finish records metrics and the audit row for a notification that passed validation.
// The audit write is best-effort and never changes the result.
func (uc *DefaultWebhookUsecase) finish(
	ctx context.Context,
	n domain.Notification,
	result *domain.ReconcileResult,
	payment *domain.PaymentRecord,
	handleErr error,
	startTime time.Time,
) {
	uc.recordNotificationMetrics(result, startTime)

	if uc.EventLogger == nil {
		return
	}

	event := logger.WebhookEvent{
		ID:                uuid.New().String(),
		RequestID:         n.RequestID,
		PaymentID:         n.PaymentID,
		ExternalReference: result.ExternalReference,
		Status:            result.Status.String(),
		Outcome:           string(result.Outcome),
		ReceivedAt:        startTime,
		ProcessingTime:    time.Since(startTime).Milliseconds(),
	}
	if handleErr != nil {
		event.Error = handleErr.Error()
	}
	if payment != nil {
		if payload, err := json.Marshal(paymentSnapshot(payment)); err == nil {
			event.Payload = payload
		}
	}

	// The request may already be cancelled; the audit row is still wanted.
	if err := uc.EventLogger.LogWebhookEvent(context.WithoutCancel(ctx), event); err != nil {
		slog.Warn("failed to save webhook event", "payment_id", n.PaymentID, "error", err.Error())
	}
}

type auditPayment struct {
	ID                string     `json:"id"`
	ExternalReference string     `json:"external_reference"`
	Status            string     `json:"status"`
	RawStatus         string     `json:"raw_status"`
	PaymentMethodType string     `json:"payment_type_id"`
	DateApproved      *time.Time `json:"date_approved,omitempty"`
}

func paymentSnapshot(p *domain.PaymentRecord) auditPayment {
	return auditPayment{
		ID:                p.ID,
		ExternalReference: p.ExternalReference,
		Status:            p.Status.String(),
		RawStatus:         p.RawStatus,
		PaymentMethodType: p.PaymentMethodType,
		DateApproved:      p.DateApproved,
	}
}
