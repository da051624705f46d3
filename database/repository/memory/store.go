// Package memory keeps every repository in process memory. It backs
// STORE_DRIVER=memory for local runs and the service tests.
package memory

import (
	"context"
	"sync"

	"smarthub/database/repository"
	"smarthub/models"
)

// Store holds all collections behind one mutex. Writes are serialized with
// transactions; a failed transaction is rolled back from an undo journal.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	seq           map[string]int64
	users         map[int64]models.User
	providers     map[int64]models.Provider
	bookings      map[int64]models.Booking
	notifications map[int64]models.Notification
	reviews       map[int64]models.Review
	complaints    map[int64]models.Complaint
}

func New() *Store {
	return &Store{
		seq:           make(map[string]int64),
		users:         make(map[int64]models.User),
		providers:     make(map[int64]models.Provider),
		bookings:      make(map[int64]models.Booking),
		notifications: make(map[int64]models.Notification),
		reviews:       make(map[int64]models.Review),
		complaints:    make(map[int64]models.Complaint),
	}
}

// NewSet returns a repository set over a fresh store.
func NewSet() *repository.Set {
	return New().Set()
}

// Set exposes the store through the repository interfaces.
func (s *Store) Set() *repository.Set {
	return &repository.Set{
		Users:         &userStore{s},
		Providers:     &providerStore{s},
		Bookings:      &bookingStore{s},
		Notifications: &notificationStore{s},
		Reviews:       &reviewStore{s},
		Complaints:    &complaintStore{s},
		Tx:            s,
	}
}

// Ping always succeeds; it lets the store take part in health checks.
func (s *Store) Ping(context.Context) error {
	return nil
}

type txKey struct{}

type journal struct {
	undo []func()
}

func journalFrom(ctx context.Context) *journal {
	j, _ := ctx.Value(txKey{}).(*journal)
	return j
}

// WithTransaction implements database.TxRunner. Nested calls join the outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if journalFrom(ctx) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	j := &journal{}
	if err := fn(context.WithValue(ctx, txKey{}, j)); err != nil {
		s.mu.Lock()
		for i := len(j.undo) - 1; i >= 0; i-- {
			j.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// write locks the store for a mutation. Outside a transaction it also waits
// for any running transaction to finish.
func (s *Store) write(ctx context.Context) (j *journal, unlock func()) {
	j = journalFrom(ctx)
	if j == nil {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return j, func() {
		s.mu.Unlock()
		if j == nil {
			s.txMu.Unlock()
		}
	}
}

func (s *Store) read() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

// next allocates an id. Ids are not reused after a rollback. Caller holds s.mu.
func (s *Store) next(name string) int64 {
	s.seq[name]++
	return s.seq[name]
}

// record registers an undo step when running inside a transaction.
func record(j *journal, undo func()) {
	if j != nil {
		j.undo = append(j.undo, undo)
	}
}
