package usecase

import (
	"errors"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

func (uc *DefaultWebhookUsecase) recordNotificationMetrics(result *domain.ReconcileResult, startTime time.Time) {
	if uc.Metrics == nil {
		return
	}

	uc.Metrics.RecordNotification(string(result.Outcome), time.Since(startTime).Seconds())

	switch result.Outcome {
	case domain.OutcomeNotFound, domain.OutcomeUpstreamError, domain.OutcomeMalformed, domain.OutcomeInternalError:
		uc.Metrics.RecordError(string(result.Outcome))
	}
}

func (uc *DefaultWebhookUsecase) recordTransitionMetrics(from, to domain.PaymentStatus) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordTransition(from.String(), to.String())
}

func (uc *DefaultWebhookUsecase) recordCustomerMessageMetrics(status domain.PaymentStatus, delivered bool) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordCustomerMessage(status.String(), delivered)
}

func (uc *DefaultWebhookUsecase) recordLookupMetrics(err error, startTime time.Time) {
	if uc.Metrics == nil {
		return
	}

	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrPaymentNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	uc.Metrics.RecordProcessorLookup(result, time.Since(startTime).Seconds())
}
