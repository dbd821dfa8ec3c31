package usecase

import (
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

// transitionPlan is what a notification does to one locked transaction.
type transitionPlan struct {
	Update         domain.TransactionUpdate
	NotifyRequired bool
	Outcome        domain.ReconcileOutcome
}

// planTransition applies the status rules to the row as read under the lock.
// The processor is trusted, so a terminal status may be replaced by another one.
func planTransition(txn *domain.Transaction, payment *domain.PaymentRecord, now time.Time) transitionPlan {
	incoming := payment.Status
	var plan transitionPlan

	switch {
	case incoming == domain.StatusApproved && txn.PaymentStatus != domain.StatusApproved:
		plan.Update.PaymentStatus = &incoming
		if payment.PaymentMethodType != "" {
			method := payment.PaymentMethodType
			plan.Update.PaymentMethod = &method
		}
		// approvedAt is written once, even if the payment was approved before
		// and moved away in between.
		if txn.ApprovedAt == nil {
			approvedAt := now
			plan.Update.ApprovedAt = &approvedAt
		}
		plan.NotifyRequired = !txn.NotificationSent
		plan.Outcome = domain.OutcomeUpdated

	case incoming != txn.PaymentStatus:
		plan.Update.PaymentStatus = &incoming
		plan.NotifyRequired = incoming == domain.StatusRejected && !txn.NotificationSent
		plan.Outcome = domain.OutcomeUpdated

	default:
		// Redelivery. Only an undelivered customer message is retried.
		plan.NotifyRequired = incoming.Notifies() && !txn.NotificationSent
		plan.Outcome = domain.OutcomeDuplicate
		if plan.NotifyRequired {
			plan.Outcome = domain.OutcomeNotifyRetried
		}
	}

	return plan
}
