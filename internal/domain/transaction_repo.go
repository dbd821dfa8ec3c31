package domain

import "context"

// TransactionStore is the view of the store inside one reconciliation transaction.
type TransactionStore interface {
	// FindForUpdate loads the transaction and its customer holding an exclusive
	// row lock until the enclosing transaction ends. Returns ErrTransactionNotFound
	// when no row matches.
	FindForUpdate(ctx context.Context, externalReference string) (*Transaction, *Customer, error)
	UpdateTransaction(ctx context.Context, transactionID int64, update TransactionUpdate) error
}

type TransactionRepository interface {
	// WithinTransaction runs fn in a single database transaction. A non-nil error
	// from fn rolls everything back; otherwise the transaction is committed.
	WithinTransaction(ctx context.Context, fn func(store TransactionStore) error) error
}
