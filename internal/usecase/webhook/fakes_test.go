package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/logger"
)

// memRepo is an in-memory TransactionRepository. FindForUpdate takes a
// per-reference mutex released when the enclosing transaction ends, and writes
// become visible only on commit.
type memRepo struct {
	mu        sync.Mutex
	rows      map[string]*domain.Transaction
	customers map[int64]*domain.Customer
	rowLocks  map[string]*sync.Mutex

	transactions int
	updates      []domain.TransactionUpdate
	commits      []domain.PaymentStatus

	failUpdateAfter int // fail the n-th update (1-based), 0 disables
	updateErr       error
}

func newMemRepo() *memRepo {
	return &memRepo{
		rows:      make(map[string]*domain.Transaction),
		customers: make(map[int64]*domain.Customer),
		rowLocks:  make(map[string]*sync.Mutex),
	}
}

func (r *memRepo) addTransaction(txn domain.Transaction, customer domain.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn.CustomerID = customer.ID
	r.rows[txn.ExternalReference] = &txn
	r.customers[customer.ID] = &customer
}

func (r *memRepo) get(externalReference string) domain.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyTransaction(r.rows[externalReference])
}

func (r *memRepo) snapshot() map[string]domain.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.Transaction, len(r.rows))
	for ref, t := range r.rows {
		out[ref] = copyTransaction(t)
	}
	return out
}

func (r *memRepo) transactionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transactions
}

func (r *memRepo) statusUpdates() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.updates {
		if u.PaymentStatus != nil {
			n++
		}
	}
	return n
}

func (r *memRepo) lockFor(externalReference string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rowLocks[externalReference]
	if !ok {
		l = &sync.Mutex{}
		r.rowLocks[externalReference] = l
	}
	return l
}

func (r *memRepo) WithinTransaction(ctx context.Context, fn func(store domain.TransactionStore) error) error {
	r.mu.Lock()
	r.transactions++
	r.mu.Unlock()

	tx := &memTx{repo: r, working: make(map[string]*domain.Transaction)}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for ref, t := range tx.working {
		c := copyTransaction(t)
		r.rows[ref] = &c
		r.commits = append(r.commits, c.PaymentStatus)
	}
	return nil
}

type memTx struct {
	repo    *memRepo
	working map[string]*domain.Transaction
	held    []*sync.Mutex
}

func (tx *memTx) FindForUpdate(ctx context.Context, externalReference string) (*domain.Transaction, *domain.Customer, error) {
	lock := tx.repo.lockFor(externalReference)
	lock.Lock()
	tx.held = append(tx.held, lock)

	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()

	row, ok := tx.repo.rows[externalReference]
	if !ok {
		return nil, nil, domain.ErrTransactionNotFound
	}
	working := copyTransaction(row)
	tx.working[externalReference] = &working

	customer := *tx.repo.customers[row.CustomerID]
	result := copyTransaction(row)
	return &result, &customer, nil
}

func (tx *memTx) UpdateTransaction(ctx context.Context, transactionID int64, update domain.TransactionUpdate) error {
	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()

	tx.repo.updates = append(tx.repo.updates, update)
	if tx.repo.failUpdateAfter > 0 && len(tx.repo.updates) >= tx.repo.failUpdateAfter {
		return tx.repo.updateErr
	}

	for _, t := range tx.working {
		if t.ID == transactionID {
			update.Apply(t)
			return nil
		}
	}
	return errors.New("transaction not locked")
}

func (tx *memTx) release() {
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.held[i].Unlock()
	}
}

func copyTransaction(t *domain.Transaction) domain.Transaction {
	if t == nil {
		return domain.Transaction{}
	}
	c := *t
	if t.ApprovedAt != nil {
		approvedAt := *t.ApprovedAt
		c.ApprovedAt = &approvedAt
	}
	return c
}

type fakeProcessor struct {
	mu       sync.Mutex
	payments map[string]*domain.PaymentRecord
	err      error
	calls    atomic.Int32
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{payments: make(map[string]*domain.PaymentRecord)}
}

func (p *fakeProcessor) add(paymentID, externalReference, status, paymentType string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payments[paymentID] = &domain.PaymentRecord{
		ID:                paymentID,
		ExternalReference: externalReference,
		Status:            domain.ParsePaymentStatus(status),
		RawStatus:         status,
		PaymentMethodType: paymentType,
	}
}

func (p *fakeProcessor) GetPayment(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	payment, ok := p.payments[paymentID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	c := *payment
	return &c, nil
}

type sentMessage struct {
	Email  string
	Name   string
	Status domain.PaymentStatus
}

type fakeNotifier struct {
	mu       sync.Mutex
	sent     []sentMessage
	attempts int
	failures int // fail this many attempts before succeeding
	delay    time.Duration
}

func (n *fakeNotifier) Send(ctx context.Context, email, name string, status domain.PaymentStatus) error {
	if n.delay > 0 {
		time.Sleep(n.delay)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts++
	if n.attempts <= n.failures {
		return errors.New("smtp: connection refused")
	}
	n.sent = append(n.sent, sentMessage{Email: email, Name: name, Status: status})
	return nil
}

func (n *fakeNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

func (n *fakeNotifier) attemptCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attempts
}

type fakeEventLogger struct {
	mu     sync.Mutex
	events []logger.WebhookEvent
}

func (l *fakeEventLogger) LogWebhookEvent(ctx context.Context, event logger.WebhookEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *fakeEventLogger) all() []logger.WebhookEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logger.WebhookEvent(nil), l.events...)
}
