package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaymentStatus(t *testing.T) {
	tests := map[string]PaymentStatus{
		"approved":     StatusApproved,
		" APPROVED ":   StatusApproved,
		"pending":      StatusPending,
		"authorized":   StatusAuthorized,
		"in_process":   StatusInProcess,
		"in_mediation": StatusInMediation,
		"rejected":     StatusRejected,
		"cancelled":    StatusCanceled,
		"canceled":     StatusCanceled,
		"refunded":     StatusRefunded,
		"charged_back": StatusChargedBack,
		"":             StatusUnknown,
		"expired":      StatusUnknown,
	}

	for raw, want := range tests {
		assert.Equal(t, want, ParsePaymentStatus(raw), "raw=%q", raw)
	}
}

func TestPaymentStatus_Notifies(t *testing.T) {
	assert.True(t, StatusApproved.Notifies())
	assert.True(t, StatusRejected.Notifies())
	for _, s := range []PaymentStatus{StatusPending, StatusInProcess, StatusCanceled, StatusRefunded, StatusChargedBack, StatusUnknown} {
		assert.False(t, s.Notifies(), s.String())
	}
}

func TestTransactionUpdate_Apply(t *testing.T) {
	txn := Transaction{ID: 1, PaymentStatus: StatusPending, PaymentMethod: "PIX"}

	assert.True(t, TransactionUpdate{}.IsEmpty())
	TransactionUpdate{}.Apply(&txn)
	assert.Equal(t, StatusPending, txn.PaymentStatus)
	assert.Equal(t, "PIX", txn.PaymentMethod)

	status := StatusRejected
	sent := true
	update := TransactionUpdate{PaymentStatus: &status, NotificationSent: &sent}
	assert.False(t, update.IsEmpty())
	update.Apply(&txn)

	assert.Equal(t, StatusRejected, txn.PaymentStatus)
	assert.Equal(t, "PIX", txn.PaymentMethod)
	assert.True(t, txn.NotificationSent)
	assert.Nil(t, txn.ApprovedAt)
}
