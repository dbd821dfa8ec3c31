package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

// HandleNotification reconciles the local transaction with the processor's view of
// the notified payment. The returned result is never nil; err classifies failures
// with the domain sentinels.
func (uc *DefaultWebhookUsecase) HandleNotification(ctx context.Context, n domain.Notification) (*domain.ReconcileResult, error) {
	startTime := time.Now()
	result := &domain.ReconcileResult{PaymentID: n.PaymentID}

	if err := validateNotification(n); err != nil {
		result.Outcome = domain.OutcomeRejected
		slog.Warn("webhook notification rejected", "topic", n.Topic, "payment_id", n.PaymentID, "error", err.Error())
		uc.recordNotificationMetrics(result, startTime)
		return result, err
	}

	// 1. Authoritative state from the processor
	payment, err := uc.fetchPayment(ctx, n.PaymentID)
	if err != nil {
		result.Outcome = domain.OutcomeUpstreamError
		slog.Error("payment lookup failed", "payment_id", n.PaymentID, "error", err.Error())
		uc.finish(ctx, n, result, nil, err, startTime)
		return result, err
	}

	result.ExternalReference = payment.ExternalReference
	result.Status = payment.Status

	if payment.ExternalReference == "" {
		result.Outcome = domain.OutcomeMalformed
		err := fmt.Errorf("payment %s: %w", n.PaymentID, domain.ErrMissingExternalReference)
		slog.Error("external reference missing in processor payment", "payment_id", n.PaymentID)
		uc.finish(ctx, n, result, payment, err, startTime)
		return result, err
	}

	if payment.Status == domain.StatusUnknown {
		result.Outcome = domain.OutcomeIgnored
		slog.Warn("unknown payment status, notification ignored",
			"payment_id", n.PaymentID,
			"external_reference", payment.ExternalReference,
			"raw_status", payment.RawStatus,
		)
		uc.finish(ctx, n, result, payment, nil, startTime)
		return result, nil
	}

	// 2. Lock, transition, notify, commit
	txCtx, cancel := uc.transactionContext(ctx)
	defer cancel()

	var committed *transitionPlan
	err = uc.TransactionRepo.WithinTransaction(txCtx, func(store domain.TransactionStore) error {
		plan, err := uc.reconcile(txCtx, store, payment, result)
		if err != nil {
			return err
		}
		committed = plan
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			result.Outcome = domain.OutcomeNotFound
			slog.Error("no local transaction for processor payment",
				"payment_id", n.PaymentID,
				"external_reference", payment.ExternalReference,
			)
		default:
			result.Outcome = domain.OutcomeInternalError
			result.NotificationSent = false
			if !errors.Is(err, domain.ErrPersistence) {
				err = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
			}
			slog.Error("reconciliation rolled back",
				"payment_id", n.PaymentID,
				"external_reference", payment.ExternalReference,
				"error", err.Error(),
			)
		}
		uc.finish(ctx, n, result, payment, err, startTime)
		return result, err
	}

	if committed != nil && committed.Update.PaymentStatus != nil {
		uc.recordTransitionMetrics(result.PreviousStatus, result.Status)
	}

	slog.Info("webhook processed",
		"payment_id", n.PaymentID,
		"external_reference", payment.ExternalReference,
		"previous_status", result.PreviousStatus.String(),
		"status", result.Status.String(),
		"outcome", string(result.Outcome),
		"notified", result.Notified,
	)
	uc.finish(ctx, n, result, payment, nil, startTime)
	return result, nil
}

func validateNotification(n domain.Notification) error {
	if n.Topic != domain.TopicPayment {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTopic, n.Topic)
	}
	if n.PaymentID == "" {
		return domain.ErrMissingPaymentID
	}
	return nil
}

// transactionContext keeps request values but not its cancellation, so the status
// change decided under the lock is committed even if the caller goes away.
func (uc *DefaultWebhookUsecase) transactionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if uc.Timeouts.Transaction <= 0 {
		return context.WithCancel(detached)
	}
	return context.WithTimeout(detached, uc.Timeouts.Transaction)
}

func (uc *DefaultWebhookUsecase) fetchPayment(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	if uc.Timeouts.Lookup > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.Timeouts.Lookup)
		defer cancel()
	}

	startTime := time.Now()
	payment, err := uc.Processor.GetPayment(ctx, paymentID)
	uc.recordLookupMetrics(err, startTime)
	if err != nil {
		if !domain.IsUpstreamError(err) {
			err = fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}
		return nil, err
	}
	return payment, nil
}

// reconcile runs under the row lock. Any error it returns rolls the whole unit back.
func (uc *DefaultWebhookUsecase) reconcile(
	ctx context.Context,
	store domain.TransactionStore,
	payment *domain.PaymentRecord,
	result *domain.ReconcileResult,
) (*transitionPlan, error) {
	txn, customer, err := store.FindForUpdate(ctx, payment.ExternalReference)
	if err != nil {
		return nil, err
	}

	result.TransactionID = txn.ID
	result.PreviousStatus = txn.PaymentStatus

	plan := planTransition(txn, payment, uc.now())
	if !plan.Update.IsEmpty() {
		if err := store.UpdateTransaction(ctx, txn.ID, plan.Update); err != nil {
			return nil, fmt.Errorf("update transaction %d: %w", txn.ID, err)
		}
		plan.Update.Apply(txn)
	}

	result.Outcome = plan.Outcome
	result.Status = txn.PaymentStatus

	if plan.NotifyRequired {
		if err := uc.notifyCustomer(ctx, customer, payment.Status); err != nil {
			// Left unflagged: the next redelivery retries the message.
			slog.Warn("customer notification failed",
				"transaction_id", txn.ID,
				"status", payment.Status.String(),
				"error", err.Error(),
			)
		} else {
			sent := true
			if err := store.UpdateTransaction(ctx, txn.ID, domain.TransactionUpdate{NotificationSent: &sent}); err != nil {
				return nil, fmt.Errorf("flag notification sent for transaction %d: %w", txn.ID, err)
			}
			txn.NotificationSent = true
			result.Notified = true
		}
	}

	result.NotificationSent = txn.NotificationSent
	return &plan, nil
}

func (uc *DefaultWebhookUsecase) notifyCustomer(ctx context.Context, customer *domain.Customer, status domain.PaymentStatus) error {
	if customer == nil {
		uc.recordCustomerMessageMetrics(status, false)
		return fmt.Errorf("%w: customer missing", domain.ErrNotificationFailed)
	}

	if uc.Timeouts.Notify > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.Timeouts.Notify)
		defer cancel()
	}

	err := uc.Notifier.Send(ctx, customer.Email, customer.Name, status)
	uc.recordCustomerMessageMetrics(status, err == nil)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNotificationFailed, err)
	}
	return nil
}
