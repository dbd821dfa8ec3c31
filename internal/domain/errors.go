package domain

import "errors"

var (
	ErrInvalidTopic             = errors.New("invalid notification topic")
	ErrMissingPaymentID         = errors.New("missing payment id")
	ErrMissingExternalReference = errors.New("external reference missing in processor payment")
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrPaymentNotFound          = errors.New("payment not found at processor")
	ErrUpstreamUnavailable      = errors.New("payment processor unavailable")
	ErrPersistence              = errors.New("persistence failure")
	ErrNotificationFailed       = errors.New("customer notification failed")
)

// IsValidationError reports errors caused by a malformed inbound notification.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTopic) || errors.Is(err, ErrMissingPaymentID)
}

// IsUpstreamError reports errors the processor is expected to resolve by redelivery.
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrPaymentNotFound)
}
