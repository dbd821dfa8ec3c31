package domain

type ReconcileOutcome string

const (
	OutcomeUpdated       ReconcileOutcome = "updated"
	OutcomeNotifyRetried ReconcileOutcome = "notification_retried"
	OutcomeDuplicate     ReconcileOutcome = "duplicate"
	OutcomeIgnored       ReconcileOutcome = "ignored"
	OutcomeRejected      ReconcileOutcome = "rejected"
	OutcomeNotFound      ReconcileOutcome = "not_found"
	OutcomeUpstreamError ReconcileOutcome = "upstream_error"
	OutcomeMalformed     ReconcileOutcome = "malformed_upstream"
	OutcomeInternalError ReconcileOutcome = "internal_error"
)

type ReconcileResult struct {
	Outcome           ReconcileOutcome
	PaymentID         string
	ExternalReference string
	TransactionID     int64
	PreviousStatus    PaymentStatus
	Status            PaymentStatus
	NotificationSent  bool
	Notified          bool
}
