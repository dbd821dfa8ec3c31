package domain

import (
	"strings"
	"time"
)

type PaymentStatus string

const (
	StatusPending     PaymentStatus = "PENDING"
	StatusApproved    PaymentStatus = "APPROVED"
	StatusAuthorized  PaymentStatus = "AUTHORIZED"
	StatusInProcess   PaymentStatus = "IN_PROCESS"
	StatusInMediation PaymentStatus = "IN_MEDIATION"
	StatusRejected    PaymentStatus = "REJECTED"
	StatusCanceled    PaymentStatus = "CANCELED"
	StatusRefunded    PaymentStatus = "REFUNDED"
	StatusChargedBack PaymentStatus = "CHARGED_BACK"
	StatusUnknown     PaymentStatus = "UNKNOWN"
)

var knownStatuses = map[string]PaymentStatus{
	"PENDING":      StatusPending,
	"APPROVED":     StatusApproved,
	"AUTHORIZED":   StatusAuthorized,
	"IN_PROCESS":   StatusInProcess,
	"IN_MEDIATION": StatusInMediation,
	"REJECTED":     StatusRejected,
	"CANCELED":     StatusCanceled,
	"CANCELLED":    StatusCanceled,
	"REFUNDED":     StatusRefunded,
	"CHARGED_BACK": StatusChargedBack,
}

// ParsePaymentStatus normalizes a processor status string. Anything outside the
// known set maps to StatusUnknown.
func ParsePaymentStatus(raw string) PaymentStatus {
	s, ok := knownStatuses[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return StatusUnknown
	}
	return s
}

// Notifies reports whether reaching this status warrants a customer message.
func (s PaymentStatus) Notifies() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s PaymentStatus) String() string {
	return string(s)
}

// Notification is the inbound processor webhook (IPN) call.
type Notification struct {
	Topic     string
	PaymentID string
	RequestID string
}

const TopicPayment = "payment"

// PaymentRecord is the authoritative payment state reported by the processor.
type PaymentRecord struct {
	ID                string
	ExternalReference string
	Status            PaymentStatus
	RawStatus         string
	PaymentMethodType string
	DateApproved      *time.Time
}
