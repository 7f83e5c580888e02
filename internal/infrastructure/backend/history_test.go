package backend

import (
	"context"
	"net/http"
	"testing"

	"github.com/erp/orderdesk/internal/domain/settlement"
	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorySource_PaymentsForRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.Equal(t, "pr-1", r.URL.Query().Get("request_id"))
		_, _ = w.Write([]byte(`[
			{"id":"p1","amount":"500","date":"2024-03-01","method":"cash","recorded_by":"ada"},
			{"id":"p2","amount":300.25,"date":"2024-03-02T10:00:00Z","method":"POS","reference":"TX-9","recorded_by":"ada"}
		]`))
	}, fastRetry(0))

	records, err := NewHistorySource(client).PaymentsForRequest(context.Background(), "pr-1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, settlement.MethodCash, records[0].Method)
	assert.Equal(t, 2024, records[0].Date.Year())
	assert.Equal(t, settlement.MethodPOS, records[1].Method)
	assert.Equal(t, "TX-9", records[1].Reference)
	assert.True(t, settlement.TotalPaid(records).Equal(decimal.RequireFromString("800.25")))
}

func TestHistorySource_PaymentsRejectCheque(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"p1","amount":"10","method":"Cheque"}]`))
	}, fastRetry(0))

	_, err := NewHistorySource(client).PaymentsForRequest(context.Background(), "pr-1")
	assert.ErrorIs(t, err, shared.ErrUpstream)
}

func TestHistorySource_SettlementsForAccount_Envelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/settlements", r.URL.Path)
		assert.Equal(t, "acct-7", r.URL.Query().Get("account_id"))
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"id":"s1","amount":"500","method":"Cheque","notes":"march","recorded_by":"bo"},
			{"id":"s2","amount":"300","method":"Transfer","recorded_by":"bo"},
			{"id":"s3","amount":"200","method":"Cash","recorded_by":"bo"}
		]}`))
	}, fastRetry(0))

	records, err := NewHistorySource(client).SettlementsForAccount(context.Background(), "acct-7")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, settlement.MethodCheque, records[0].Method)
	assert.Equal(t, "march", records[0].Notes)
	assert.True(t, records[0].Date.IsZero())

	paid := settlement.TotalPaid(records)
	assert.True(t, paid.Equal(decimal.NewFromInt(1000)))
	assert.True(t, settlement.Outstanding(decimal.NewFromInt(1500), paid).Equal(decimal.NewFromInt(500)))
}

func TestHistorySource_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, fastRetry(0))

	_, err := NewHistorySource(client).SettlementsForAccount(context.Background(), "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestHistorySource_EmptyAndInvalid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	}, fastRetry(0))
	source := NewHistorySource(client)

	records, err := source.PaymentsForRequest(context.Background(), "pr-1")
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = source.PaymentsForRequest(context.Background(), "  ")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestHistorySource_MalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown method", `[{"id":"x","amount":"1","method":"Barter"}]`},
		{"bad date", `[{"id":"x","amount":"1","method":"Cash","date":"yesterday"}]`},
		{"not a list", `{"data":{"id":"x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}, fastRetry(0))

			_, err := NewHistorySource(client).PaymentsForRequest(context.Background(), "pr-1")
			assert.ErrorIs(t, err, shared.ErrUpstream)
		})
	}
}
