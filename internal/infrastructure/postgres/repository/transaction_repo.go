package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultTransactionRepository struct {
	DB          *gorm.DB
	LockTimeout time.Duration
}

func NewDefaultTransactionRepository(db *gorm.DB, lockTimeout time.Duration) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db, LockTimeout: lockTimeout}
}

func (r *DefaultTransactionRepository) WithinTransaction(ctx context.Context, fn func(store domain.TransactionStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.LockTimeout > 0 {
			// SET does not take bind parameters
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.LockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("%w: set lock timeout: %w", domain.ErrPersistence, err)
			}
		}
		return fn(&transactionStore{tx: tx})
	})
}

type transactionStore struct {
	tx *gorm.DB
}

func (s *transactionStore) FindForUpdate(ctx context.Context, externalReference string) (*domain.Transaction, *domain.Customer, error) {
	var row models.LockedTransactionRow
	res := s.tx.WithContext(ctx).
		Table(models.TransactionModel{}.TableName()+" AS t").
		Select("t.id, t.external_reference, t.cliente_id, t.status_pagamento, t.data_aprovacao, t.meio_pagamento, t.notificacao_enviada, c.email, c.nome").
		Joins("JOIN "+models.CustomerModel{}.TableName()+" c ON c.id = t.cliente_id").
		Where("t.external_reference = ?", externalReference).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "t"}}).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, nil, fmt.Errorf("%w: lock transaction %q: %w", domain.ErrPersistence, externalReference, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil, fmt.Errorf("%w: external_reference=%s", domain.ErrTransactionNotFound, externalReference)
	}

	return mappers.ToDomainTransaction(&row), mappers.ToDomainCustomer(&row), nil
}

func (s *transactionStore) UpdateTransaction(ctx context.Context, transactionID int64, update domain.TransactionUpdate) error {
	values := mappers.ToGORMUpdates(update)
	if len(values) == 0 {
		return nil
	}

	res := s.tx.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("id = ?", transactionID).
		Updates(values)
	if res.Error != nil {
		return fmt.Errorf("%w: update transaction %d: %w", domain.ErrPersistence, transactionID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: transaction %d vanished under lock", domain.ErrPersistence, transactionID)
	}
	return nil
}
