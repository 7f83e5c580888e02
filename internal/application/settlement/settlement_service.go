package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/orderdesk/internal/application/settlement/dto"
	"github.com/erp/orderdesk/internal/domain/ledger"
	"github.com/erp/orderdesk/internal/domain/settlement"
	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/erp/orderdesk/internal/infrastructure/logger"
	"github.com/erp/orderdesk/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// HistorySource supplies payment and settlement history recorded elsewhere
type HistorySource interface {
	PaymentsForRequest(ctx context.Context, requestID string) ([]settlement.PaymentRecord, error)
	SettlementsForAccount(ctx context.Context, accountID string) ([]settlement.SettlementRecord, error)
}

// RequestLookup finds a purchase request in a session ledger
type RequestLookup interface {
	Lookup(sessionID, id string) (ledger.PurchaseRequest, bool)
}

// SettlementService aggregates payment and settlement records
type SettlementService struct {
	history  HistorySource
	requests RequestLookup
	metrics  *telemetry.ServiceMetrics
	logger   *zap.Logger
}

// NewSettlementService creates a new settlement service. history may be nil
// when no backend is configured; only the history endpoints need it.
func NewSettlementService(
	history HistorySource,
	requests RequestLookup,
	metrics *telemetry.ServiceMetrics,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		history:  history,
		requests: requests,
		metrics:  metrics,
		logger:   logger,
	}
}

// Methods returns the classification tables for both record kinds
func (s *SettlementService) Methods(ctx context.Context) dto.MethodsResponse {
	return dto.MethodsResponse{
		Payment:    dto.ToMethodStyleResponses(settlement.PaymentStyles()),
		Settlement: dto.ToMethodStyleResponses(settlement.SettlementStyles()),
	}
}

// Summarize aggregates caller-supplied records against an owed amount
func (s *SettlementService) Summarize(ctx context.Context, req dto.SummaryRequest, lang language.Tag) (*dto.SummaryResponse, error) {
	_, span := telemetry.StartServiceSpan(ctx, "settlement", "summarize",
		telemetry.AttrRecordCount, len(req.Records),
	)
	defer span.End()

	entries := make([]settlement.Entry, len(req.Records))
	for i, in := range req.Records {
		method, err := settlement.ParsePaymentMethod(in.Method)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if req.Kind == dto.KindPayment && !method.ValidForPayment() {
			err := fmt.Errorf("%w: record %d: %s is not accepted for payments", shared.ErrInvalidInput, i, method)
			telemetry.RecordError(span, err)
			return nil, err
		}
		entries[i] = settlement.Entry{
			ID:         in.ID,
			Amount:     in.Amount,
			Date:       in.Date,
			Method:     method,
			Reference:  in.Reference,
			RecordedBy: in.RecordedBy,
		}
	}

	var summary settlement.Summary
	switch req.Kind {
	case dto.KindPayment:
		records := make([]settlement.PaymentRecord, len(entries))
		for i, e := range entries {
			records[i] = settlement.PaymentRecord{Entry: e}
		}
		summary = settlement.Summarize(req.TotalOwed, records)
	case dto.KindSettlement:
		records := make([]settlement.SettlementRecord, len(entries))
		for i, e := range entries {
			records[i] = settlement.SettlementRecord{Entry: e, Notes: req.Records[i].Notes}
		}
		summary = settlement.Summarize(req.TotalOwed, records)
	default:
		err := fmt.Errorf("%w: unknown record kind '%s'", shared.ErrInvalidInput, req.Kind)
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := dto.ToSummaryResponse(req.Kind, summary, lang)
	return &resp, nil
}

// RequestPayments fetches the payments of a purchase request and totals
// them. The owed amount is the query's TotalOwed, else the request's total in
// the caller's session ledger, else zero.
func (s *SettlementService) RequestPayments(ctx context.Context, q dto.HistoryQuery) (*dto.HistoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "request_payments",
		telemetry.AttrRequestID, q.ID,
	)
	defer span.End()

	if s.history == nil {
		return nil, errBackendNotConfigured
	}

	start := time.Now()
	records, err := s.history.PaymentsForRequest(ctx, q.ID)
	s.metrics.UpstreamFetched(ctx, "payments", time.Since(start), err)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.Enrich(ctx, s.logger).Warn("Failed to fetch payment history",
			zap.String("request_id", q.ID),
			zap.Error(err))
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrRecordCount, len(records))

	owed := s.owedFor(q)
	summary := dto.ToSummaryResponse(dto.KindPayment, settlement.Summarize(owed, records), q.Language)
	return &dto.HistoryResponse{
		ID:      q.ID,
		Records: dto.ToPaymentRecordResponses(records),
		Summary: summary,
	}, nil
}

// AccountSettlements fetches the settlements of an account and totals them
// against the query's TotalOwed
func (s *SettlementService) AccountSettlements(ctx context.Context, q dto.HistoryQuery) (*dto.HistoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "account_settlements",
		telemetry.AttrAccountID, q.ID,
	)
	defer span.End()

	if s.history == nil {
		return nil, errBackendNotConfigured
	}

	start := time.Now()
	records, err := s.history.SettlementsForAccount(ctx, q.ID)
	s.metrics.UpstreamFetched(ctx, "settlements", time.Since(start), err)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.Enrich(ctx, s.logger).Warn("Failed to fetch settlement history",
			zap.String("account_id", q.ID),
			zap.Error(err))
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrRecordCount, len(records))

	owed := decimal.Zero
	if q.TotalOwed != nil {
		owed = *q.TotalOwed
	}
	summary := dto.ToSummaryResponse(dto.KindSettlement, settlement.Summarize(owed, records), q.Language)
	return &dto.HistoryResponse{
		ID:      q.ID,
		Records: dto.ToSettlementRecordResponses(records),
		Summary: summary,
	}, nil
}

func (s *SettlementService) owedFor(q dto.HistoryQuery) decimal.Decimal {
	if q.TotalOwed != nil {
		return *q.TotalOwed
	}
	if s.requests != nil {
		if req, ok := s.requests.Lookup(q.SessionID, q.ID); ok {
			return req.Total
		}
	}
	return decimal.Zero
}

var errBackendNotConfigured = shared.Errorf(shared.ErrUpstream, "history backend is not configured")
