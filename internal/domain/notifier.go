package domain

import "context"

// Notifier delivers the customer-facing payment message. A returned error is an
// ordinary delivery failure, not a reason to abort reconciliation.
type Notifier interface {
	Send(ctx context.Context, email, name string, status PaymentStatus) error
}
