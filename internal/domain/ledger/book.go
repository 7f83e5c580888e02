package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is an immutable snapshot of purchase requests, most recent first.
// Every transition returns a new Book and leaves the receiver untouched.
type Book struct {
	requests []PurchaseRequest
}

// Len returns the number of requests
func (b Book) Len() int {
	return len(b.requests)
}

// Requests returns a copy of the requests, most recent first
func (b Book) Requests() []PurchaseRequest {
	out := make([]PurchaseRequest, len(b.requests))
	for i, r := range b.requests {
		out[i] = r.clone()
	}
	return out
}

// Find returns the first request with the given id
func (b Book) Find(id string) (PurchaseRequest, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return PurchaseRequest{}, false
	}
	return b.requests[i].clone(), true
}

// Filter returns the requests in the given status, most recent first
func (b Book) Filter(status RequestStatus) []PurchaseRequest {
	out := make([]PurchaseRequest, 0)
	for _, r := range b.requests {
		if r.Status == status {
			out = append(out, r.clone())
		}
	}
	return out
}

// CountByStatus counts requests per status; every status is present
func (b Book) CountByStatus() map[RequestStatus]int {
	counts := make(map[RequestStatus]int, len(AllStatuses))
	for _, s := range AllStatuses {
		counts[s] = 0
	}
	for _, r := range b.requests {
		counts[r.Status]++
	}
	return counts
}

// Insert returns a book with r at the head
func (b Book) Insert(r PurchaseRequest) Book {
	next := make([]PurchaseRequest, 0, len(b.requests)+1)
	next = append(next, r.clone())
	next = append(next, b.requests...)
	return Book{requests: next}
}

// WithStatus returns a book where the request id has the given status.
// ok is false, and the book unchanged, when id is not present.
func (b Book) WithStatus(id string, status RequestStatus, at time.Time) (Book, bool) {
	return b.update(id, func(r *PurchaseRequest) {
		r.Status = status
		r.UpdatedAt = at
	})
}

// WithCharges returns a book where the request id carries the given charges
// and a total of subtotal plus charges.
func (b Book) WithCharges(id string, charges decimal.Decimal, at time.Time) (Book, bool) {
	return b.update(id, func(r *PurchaseRequest) {
		r.Charges = charges
		r.Total = r.Subtotal.Add(charges)
		r.UpdatedAt = at
	})
}

func (b Book) update(id string, fn func(r *PurchaseRequest)) (Book, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return b, false
	}
	next := make([]PurchaseRequest, len(b.requests))
	copy(next, b.requests)
	fn(&next[i])
	return Book{requests: next}, true
}

func (b Book) indexOf(id string) int {
	for i := range b.requests {
		if b.requests[i].ID == id {
			return i
		}
	}
	return -1
}
