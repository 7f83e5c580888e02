package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	ledgerapp "github.com/erp/orderdesk/internal/application/ledger"
	ledgerdto "github.com/erp/orderdesk/internal/application/ledger/dto"
	settlementapp "github.com/erp/orderdesk/internal/application/settlement"
	"github.com/erp/orderdesk/internal/application/settlement/dto"
	"github.com/erp/orderdesk/internal/domain/ledger"
	"github.com/erp/orderdesk/internal/domain/settlement"
	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockHistorySource is a mock implementation of settlementapp.HistorySource
type MockHistorySource struct {
	mock.Mock
}

func (m *MockHistorySource) PaymentsForRequest(ctx context.Context, requestID string) ([]settlement.PaymentRecord, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settlement.PaymentRecord), args.Error(1)
}

func (m *MockHistorySource) SettlementsForAccount(ctx context.Context, accountID string) ([]settlement.SettlementRecord, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settlement.SettlementRecord), args.Error(1)
}

type settlementFixture struct {
	engine   *gin.Engine
	history  *MockHistorySource
	requests *ledgerapp.PurchaseRequestService
}

func newSettlementFixture(withHistory bool) *settlementFixture {
	sessions := ledger.NewSessions(ledger.SessionsConfig{})
	requests := ledgerapp.NewPurchaseRequestService(sessions, nil, zap.NewNop())
	history := new(MockHistorySource)

	var source settlementapp.HistorySource
	if withHistory {
		source = history
	}
	h := NewSettlementHandler(settlementapp.NewSettlementService(source, requests, nil, zap.NewNop()))

	r := newEngine()
	r.GET("/settlements/methods", h.Methods)
	r.POST("/settlements/summary", h.Summarize)
	r.GET("/settlements/requests/:id/payments", h.RequestPayments)
	r.GET("/settlements/accounts/:id", h.AccountSettlements)
	return &settlementFixture{engine: r, history: history, requests: requests}
}

func record(id string, amount int64, method settlement.PaymentMethod) settlement.Entry {
	return settlement.Entry{
		ID:         id,
		Amount:     decimal.NewFromInt(amount),
		Date:       time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Method:     method,
		RecordedBy: "clerk",
	}
}

func TestSettlementHandler_Methods(t *testing.T) {
	f := newSettlementFixture(false)

	w := do(t, f.engine, call{method: http.MethodGet, path: "/settlements/methods"})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.MethodsResponse
	decodeData(t, w, &got)
	assert.Len(t, got.Payment, 3)
	assert.Len(t, got.Settlement, 4)
}

func TestSettlementHandler_Summarize(t *testing.T) {
	f := newSettlementFixture(false)

	body := map[string]any{
		"kind":       "settlement",
		"total_owed": "1500",
		"records": []map[string]any{
			{"id": "s1", "amount": "500", "method": "Cheque"},
			{"id": "s2", "amount": "300", "method": "Transfer"},
			{"id": "s3", "amount": "200", "method": "Cash"},
		},
	}
	w := do(t, f.engine, call{
		method:  http.MethodPost,
		path:    "/settlements/summary",
		body:    body,
		headers: map[string]string{"Accept-Language": "de-DE"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got dto.SummaryResponse
	decodeData(t, w, &got)
	assert.True(t, got.TotalPaid.Equal(decimal.NewFromInt(1000)))
	assert.True(t, got.Outstanding.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "1.000,00", got.FormattedTotalPaid)
}

func TestSettlementHandler_SummarizeRejectsChequePayment(t *testing.T) {
	f := newSettlementFixture(false)

	body := map[string]any{
		"kind":    "payment",
		"records": []map[string]any{{"amount": "5", "method": "Cheque"}},
	}
	w := do(t, f.engine, call{method: http.MethodPost, path: "/settlements/summary", body: body})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeData(t, w, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_INVALID_INPUT", resp.Error.Code)
}

func TestSettlementHandler_RequestPayments(t *testing.T) {
	f := newSettlementFixture(true)
	f.history.On("PaymentsForRequest", mock.Anything, "pr-1").Return([]settlement.PaymentRecord{
		{Entry: record("p1", 700, settlement.MethodCash)},
		{Entry: record("p2", 300, settlement.MethodPOS)},
	}, nil)

	_, err := f.requests.Create(context.Background(), "till-1", ledgerdto.CreatePurchaseRequestRequest{
		ID:       "pr-1",
		Subtotal: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	w := do(t, f.engine, call{method: http.MethodGet, path: "/settlements/requests/pr-1/payments", session: "till-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got dto.HistoryResponse
	decodeData(t, w, &got)
	assert.Len(t, got.Records, 2)
	assert.True(t, got.Summary.TotalOwed.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "settled", got.Summary.State)

	w = do(t, f.engine, call{method: http.MethodGet, path: "/settlements/requests/pr-1/payments?total_owed=1500", session: "till-1"})
	require.Equal(t, http.StatusOK, w.Code)
	got = dto.HistoryResponse{}
	decodeData(t, w, &got)
	assert.True(t, got.Summary.Outstanding.Equal(decimal.NewFromInt(500)))

	w = do(t, f.engine, call{method: http.MethodGet, path: "/settlements/requests/pr-1/payments?total_owed=abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettlementHandler_AccountSettlementsUpstreamErrors(t *testing.T) {
	f := newSettlementFixture(true)
	f.history.On("SettlementsForAccount", mock.Anything, "acct-down").
		Return(nil, shared.Errorf(shared.ErrUpstream, "backend returned 503: maintenance"))
	f.history.On("SettlementsForAccount", mock.Anything, "acct-slow").
		Return(nil, context.DeadlineExceeded)
	f.history.On("SettlementsForAccount", mock.Anything, "acct-gone").
		Return(nil, shared.Errorf(shared.ErrNotFound, "account 'acct-gone' not found"))

	tests := []struct {
		id     string
		status int
		code   string
	}{
		{"acct-down", http.StatusBadGateway, "ERR_UPSTREAM"},
		{"acct-slow", http.StatusGatewayTimeout, "ERR_UPSTREAM_TIMEOUT"},
		{"acct-gone", http.StatusNotFound, "ERR_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w := do(t, f.engine, call{method: http.MethodGet, path: "/settlements/accounts/" + tt.id})
			assert.Equal(t, tt.status, w.Code)
			resp := decodeData(t, w, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestSettlementHandler_HistoryWithoutBackend(t *testing.T) {
	f := newSettlementFixture(false)

	w := do(t, f.engine, call{method: http.MethodGet, path: "/settlements/accounts/acct-1"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
