package domain

import "time"

type Transaction struct {
	ID                int64
	ExternalReference string
	CustomerID        int64
	PaymentStatus     PaymentStatus
	PaymentMethod     string
	ApprovedAt        *time.Time
	NotificationSent  bool
}

type Customer struct {
	ID    int64
	Email string
	Name  string
}

// TransactionUpdate carries the fields to persist. Nil fields are left untouched.
type TransactionUpdate struct {
	PaymentStatus    *PaymentStatus
	PaymentMethod    *string
	ApprovedAt       *time.Time
	NotificationSent *bool
}

func (u TransactionUpdate) IsEmpty() bool {
	return u.PaymentStatus == nil && u.PaymentMethod == nil && u.ApprovedAt == nil && u.NotificationSent == nil
}

// Apply copies the set fields onto t.
func (u TransactionUpdate) Apply(t *Transaction) {
	if u.PaymentStatus != nil {
		t.PaymentStatus = *u.PaymentStatus
	}
	if u.PaymentMethod != nil {
		t.PaymentMethod = *u.PaymentMethod
	}
	if u.ApprovedAt != nil {
		approvedAt := *u.ApprovedAt
		t.ApprovedAt = &approvedAt
	}
	if u.NotificationSent != nil {
		t.NotificationSent = *u.NotificationSent
	}
}
