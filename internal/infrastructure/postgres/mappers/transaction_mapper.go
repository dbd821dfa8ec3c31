package mappers

import (
	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(row *models.LockedTransactionRow) *domain.Transaction {
	txn := &domain.Transaction{
		ID:                row.ID,
		ExternalReference: row.ExternalReference,
		CustomerID:        row.ClienteID,
		PaymentStatus:     domain.ParsePaymentStatus(row.StatusPagamento),
		ApprovedAt:        row.DataAprovacao,
		NotificationSent:  row.NotificacaoEnviada,
	}
	if row.MeioPagamento != nil {
		txn.PaymentMethod = *row.MeioPagamento
	}
	return txn
}

func ToDomainCustomer(row *models.LockedTransactionRow) *domain.Customer {
	return &domain.Customer{
		ID:    row.ClienteID,
		Email: row.Email,
		Name:  row.Nome,
	}
}

// ToGORMUpdates turns a domain update into column values. Only set fields appear.
func ToGORMUpdates(update domain.TransactionUpdate) map[string]interface{} {
	values := make(map[string]interface{})
	if update.PaymentStatus != nil {
		values["status_pagamento"] = update.PaymentStatus.String()
	}
	if update.PaymentMethod != nil {
		values["meio_pagamento"] = *update.PaymentMethod
	}
	if update.ApprovedAt != nil {
		values["data_aprovacao"] = *update.ApprovedAt
	}
	if update.NotificationSent != nil {
		values["notificacao_enviada"] = *update.NotificationSent
	}
	return values
}
