package usecase

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// cancellingNotifier drops the inbound request while the message is in flight.
type cancellingNotifier struct {
	cancelRequest context.CancelFunc
	sendCtxErr    error
	hasDeadline   bool
}

func (n *cancellingNotifier) Send(ctx context.Context, email, name string, status domain.PaymentStatus) error {
	n.cancelRequest()
	n.sendCtxErr = ctx.Err()
	_, n.hasDeadline = ctx.Deadline()
	return ctx.Err()
}

func TestHandleNotification_RequestCancelledDuringNotifyStillCommits(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`SET LOCAL lock_timeout`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT t\.id, .* FROM transactions AS t JOIN clientes c ON c\.id = t\.cliente_id WHERE t\.external_reference = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "external_reference", "cliente_id", "status_pagamento", "data_aprovacao",
			"meio_pagamento", "notificacao_enviada", "email", "nome",
		}).AddRow(int64(1), "order-abc", int64(7), "PENDING", nil, nil, false, "ana@example.com", "Ana"))
	mock.ExpectExec(`UPDATE "transactions" SET .*"status_pagamento"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "transactions" SET "notificacao_enviada"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	processor := newFakeProcessor()
	processor.add("123", "order-abc", "approved", "CREDIT_CARD")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifier := &cancellingNotifier{cancelRequest: cancel}

	uc := NewDefaultWebhookUsecase(
		repository.NewDefaultTransactionRepository(db, 5*time.Second),
		processor,
		notifier,
		nil,
		nil,
		Timeouts{Lookup: time.Second, Transaction: 5 * time.Second, Notify: time.Second},
	)

	result, err := uc.HandleNotification(ctx, domain.Notification{Topic: domain.TopicPayment, PaymentID: "123"})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, result.Outcome)
	assert.Equal(t, domain.StatusApproved, result.Status)
	assert.True(t, result.Notified)
	assert.NoError(t, notifier.sendCtxErr, "notifier context is detached from the request")
	assert.True(t, notifier.hasDeadline, "notifier context is bounded")
	assert.Error(t, ctx.Err())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleNotification_RequestCancelledDuringNotifyKeepsStatus(t *testing.T) {
	f := newWebhookFixture(t)
	f.processor.add("123", "order-abc", "approved", "CREDIT_CARD")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.uc.Notifier = notifierFunc(func(sendCtx context.Context) error {
		cancel()
		return context.Canceled
	})

	result, err := f.uc.HandleNotification(ctx, domain.Notification{Topic: domain.TopicPayment, PaymentID: "123"})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, result.Outcome)
	assert.False(t, result.Notified)

	txn := f.repo.get("order-abc")
	assert.Equal(t, domain.StatusApproved, txn.PaymentStatus)
	assert.False(t, txn.NotificationSent, "undelivered message is retried on redelivery")
}

type notifierFunc func(ctx context.Context) error

func (f notifierFunc) Send(ctx context.Context, email, name string, status domain.PaymentStatus) error {
	return f(ctx)
}
