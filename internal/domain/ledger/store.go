package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StoreOption configures a Store
type StoreOption func(*Store)

// WithStrictTransitions makes UpdateStatus follow the forward-only lifecycle
func WithStrictTransitions(strict bool) StoreOption {
	return func(s *Store) {
		s.strict = strict
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store holds the current Book of one session. Readers get immutable
// snapshots; mutations swap in a new Book under the lock.
type Store struct {
	mu     sync.Mutex
	book   Book
	strict bool
	now    func() time.Time
}

// NewStore creates an empty store
func NewStore(opts ...StoreOption) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current book
func (s *Store) Snapshot() Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book
}

// Strict reports whether transitions are enforced
func (s *Store) Strict() bool {
	return s.strict
}

// Create records a new pending request at the head of the book
func (s *Store) Create(d Draft) PurchaseRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := NewPurchaseRequest(d, s.now())
	s.book = s.book.Insert(req)
	return req.clone()
}

// Get returns the request with the given id
func (s *Store) Get(id string) (PurchaseRequest, error) {
	req, ok := s.Snapshot().Find(id)
	if !ok {
		return PurchaseRequest{}, notFound(id)
	}
	return req, nil
}

// List returns all requests, or those in status when it is non-empty
func (s *Store) List(status RequestStatus) []PurchaseRequest {
	book := s.Snapshot()
	if status == "" {
		return book.Requests()
	}
	return book.Filter(status)
}

// UpdateStatus sets the status of a request. Any status may follow any other
// unless the store is strict.
func (s *Store) UpdateStatus(id string, status RequestStatus) (PurchaseRequest, error) {
	if !status.IsValid() {
		return PurchaseRequest{}, fmt.Errorf("%w: invalid request status '%s'", shared.ErrInvalidInput, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.book.Find(id)
	if !ok {
		return PurchaseRequest{}, notFound(id)
	}
	if s.strict && !current.Status.CanTransitionTo(status) {
		return PurchaseRequest{}, shared.Errorf(shared.ErrInvalidState,
			"cannot change request %s from %s to %s", id, current.Status, status)
	}

	next, _ := s.book.WithStatus(id, status, s.now())
	s.book = next
	updated, _ := next.Find(id)
	return updated, nil
}

// UpdateCharges sets the extra charges of a request and recomputes its total
func (s *Store) UpdateCharges(id string, charges decimal.Decimal) (PurchaseRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.book.WithCharges(id, charges, s.now())
	if !ok {
		return PurchaseRequest{}, notFound(id)
	}
	s.book = next
	updated, _ := next.Find(id)
	return updated, nil
}

func notFound(id string) error {
	return shared.Errorf(shared.ErrNotFound, "purchase request '%s' not found", id)
}
