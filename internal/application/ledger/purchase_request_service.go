package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/orderdesk/internal/application/ledger/dto"
	"github.com/erp/orderdesk/internal/domain/ledger"
	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/erp/orderdesk/internal/infrastructure/logger"
	"github.com/erp/orderdesk/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseRequestService handles the session-scoped purchase request ledger
type PurchaseRequestService struct {
	sessions *ledger.Sessions
	metrics  *telemetry.ServiceMetrics
	logger   *zap.Logger
}

// NewPurchaseRequestService creates a new purchase request service
func NewPurchaseRequestService(
	sessions *ledger.Sessions,
	metrics *telemetry.ServiceMetrics,
	logger *zap.Logger,
) *PurchaseRequestService {
	return &PurchaseRequestService{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

// Create records a new pending purchase request at the head of the
// session's ledger
func (s *PurchaseRequestService) Create(ctx context.Context, sessionID string, req dto.CreatePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_request", "create",
		telemetry.AttrSessionID, sessionID,
	)
	defer span.End()

	draft := req.ToDraft()
	if err := validateAmounts(draft); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	created := s.sessions.Get(sessionID).Create(draft)
	telemetry.SetAttributes(span, telemetry.AttrRequestID, created.ID)
	s.metrics.RequestCreated(ctx)

	logger.Enrich(ctx, s.logger).Info("Purchase request created",
		zap.String("id", created.ID),
		zap.Int("items", created.ItemCount()),
		zap.String("subtotal", created.Subtotal.String()),
		zap.String("total", created.Total.String()))

	return dto.ToPurchaseRequestResponse(created), nil
}

// Get returns one purchase request of the session
func (s *PurchaseRequestService) Get(ctx context.Context, sessionID, id string) (*dto.PurchaseRequestResponse, error) {
	store, ok := s.sessions.Find(sessionID)
	if !ok {
		return nil, requestNotFound(id)
	}
	req, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	return dto.ToPurchaseRequestResponse(req), nil
}

// List returns the session's requests, most recent first
func (s *PurchaseRequestService) List(ctx context.Context, sessionID string, filter dto.ListFilter) ([]dto.PurchaseRequestResponse, error) {
	var status ledger.RequestStatus
	if filter.Status != "" {
		parsed, err := ledger.ParseRequestStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	store, ok := s.sessions.Find(sessionID)
	if !ok {
		return []dto.PurchaseRequestResponse{}, nil
	}
	return dto.ToPurchaseRequestResponses(store.List(status)), nil
}

// Summary counts the session's requests per status. A session that never
// created a request reports zero counts.
func (s *PurchaseRequestService) Summary(ctx context.Context, sessionID string) dto.StatusSummaryResponse {
	var book ledger.Book
	if store, ok := s.sessions.Find(sessionID); ok {
		book = store.Snapshot()
	}
	return dto.ToStatusSummaryResponse(book.CountByStatus())
}

// UpdateStatus replaces the status of a request. A missing id leaves the
// ledger unchanged and returns shared.ErrNotFound.
func (s *PurchaseRequestService) UpdateStatus(ctx context.Context, sessionID, id string, req dto.UpdateStatusRequest) (*dto.PurchaseRequestResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_request", "update_status",
		telemetry.AttrSessionID, sessionID,
		telemetry.AttrRequestID, id,
		telemetry.AttrRequestStatus, req.Status,
	)
	defer span.End()

	status, err := ledger.ParseRequestStatus(req.Status)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	updated, err := s.updateStatus(sessionID, id, status)
	if err != nil {
		telemetry.RecordError(span, err)
		s.recordMiss(ctx, "update_status", id, err)
		return nil, err
	}

	s.metrics.StatusChanged(ctx, status.String())
	logger.Enrich(ctx, s.logger).Info("Purchase request status updated",
		zap.String("id", id),
		zap.String("status", status.String()))

	return dto.ToPurchaseRequestResponse(updated), nil
}

// UpdateCharges sets the extra charges of a request and recomputes its
// total as subtotal + charges
func (s *PurchaseRequestService) UpdateCharges(ctx context.Context, sessionID, id string, req dto.UpdateChargesRequest) (*dto.PurchaseRequestResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_request", "update_charges",
		telemetry.AttrSessionID, sessionID,
		telemetry.AttrRequestID, id,
	)
	defer span.End()

	if req.Charges.IsNegative() {
		err := fmt.Errorf("%w: charges cannot be negative", shared.ErrInvalidInput)
		telemetry.RecordError(span, err)
		return nil, err
	}

	updated, err := s.updateCharges(sessionID, id, req.Charges)
	if err != nil {
		telemetry.RecordError(span, err)
		s.recordMiss(ctx, "update_charges", id, err)
		return nil, err
	}

	s.metrics.ChargesUpdated(ctx)
	logger.Enrich(ctx, s.logger).Info("Purchase request charges updated",
		zap.String("id", id),
		zap.String("charges", updated.Charges.String()),
		zap.String("total", updated.Total.String()))

	return dto.ToPurchaseRequestResponse(updated), nil
}

// EndSession drops the session's ledger. It reports whether one existed.
func (s *PurchaseRequestService) EndSession(ctx context.Context, sessionID string) bool {
	dropped := s.sessions.Drop(sessionID)
	if dropped {
		logger.Enrich(ctx, s.logger).Info("Session ledger dropped")
	}
	return dropped
}

// Lookup returns a request without creating the session
func (s *PurchaseRequestService) Lookup(sessionID, id string) (ledger.PurchaseRequest, bool) {
	store, ok := s.sessions.Peek(sessionID)
	if !ok {
		return ledger.PurchaseRequest{}, false
	}
	req, err := store.Get(id)
	if err != nil {
		return ledger.PurchaseRequest{}, false
	}
	return req, true
}

// Updates only reach existing sessions; a session that never created a
// request cannot hold the id.
func (s *PurchaseRequestService) updateStatus(sessionID, id string, status ledger.RequestStatus) (ledger.PurchaseRequest, error) {
	store, ok := s.sessions.Find(sessionID)
	if !ok {
		return ledger.PurchaseRequest{}, requestNotFound(id)
	}
	return store.UpdateStatus(id, status)
}

func (s *PurchaseRequestService) updateCharges(sessionID, id string, charges decimal.Decimal) (ledger.PurchaseRequest, error) {
	store, ok := s.sessions.Find(sessionID)
	if !ok {
		return ledger.PurchaseRequest{}, requestNotFound(id)
	}
	return store.UpdateCharges(id, charges)
}

func requestNotFound(id string) error {
	return shared.Errorf(shared.ErrNotFound, "purchase request '%s' not found", id)
}

func (s *PurchaseRequestService) recordMiss(ctx context.Context, op, id string, err error) {
	if !errors.Is(err, shared.ErrNotFound) {
		return
	}
	s.metrics.NotFound(ctx, op)
	logger.Enrich(ctx, s.logger).Warn("Purchase request not found, ledger unchanged",
		zap.String("operation", op),
		zap.String("id", id))
}

func validateAmounts(d ledger.Draft) error {
	if d.Subtotal.IsNegative() || d.Total.IsNegative() {
		return fmt.Errorf("%w: subtotal and total cannot be negative", shared.ErrInvalidInput)
	}
	for i, item := range d.Items {
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d has a negative quantity or price", shared.ErrInvalidInput, i)
		}
	}
	return nil
}
