package domain

import "context"

type PaymentProcessor interface {
	// GetPayment fails with ErrPaymentNotFound or ErrUpstreamUnavailable.
	GetPayment(ctx context.Context, paymentID string) (*PaymentRecord, error)
}
