package ledger

import (
	"fmt"
	"strings"

	"github.com/erp/orderdesk/internal/domain/shared"
)

// RequestStatus represents the lifecycle state of a purchase request
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusUnlocked  RequestStatus = "unlocked"
	RequestStatusPaid      RequestStatus = "paid"
	RequestStatusCompleted RequestStatus = "completed"
)

// AllStatuses lists the statuses in lifecycle order
var AllStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusUnlocked,
	RequestStatusPaid,
	RequestStatusCompleted,
}

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusUnlocked, RequestStatusPaid, RequestStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// CanTransitionTo checks the forward-only lifecycle. Only consulted when the
// store runs with strict transitions.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return target == RequestStatusUnlocked
	case RequestStatusUnlocked:
		return target == RequestStatusPaid
	case RequestStatusPaid:
		return target == RequestStatusCompleted
	case RequestStatusCompleted:
		return false // Terminal state
	}
	return false
}

// IsTerminal returns true once the request is completed
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted
}

// ParseRequestStatus parses a status name in any letter case
func ParseRequestStatus(s string) (RequestStatus, error) {
	status := RequestStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: invalid request status '%s'", shared.ErrInvalidInput, s)
	}
	return status, nil
}
