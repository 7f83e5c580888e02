package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/erp/orderdesk/internal/domain/settlement"
	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	paymentsPath    = "/payments"
	settlementsPath = "/settlements"
)

// HistorySource reads payment and settlement history from the backend.
type HistorySource struct {
	client *Client
}

// NewHistorySource creates a HistorySource on top of client.
func NewHistorySource(client *Client) *HistorySource {
	return &HistorySource{client: client}
}

// recordPayload is the backend's wire shape for one payment or settlement.
type recordPayload struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference"`
	RecordedBy string          `json:"recorded_by"`
	Notes      string          `json:"notes"`
}

// PaymentsForRequest returns the payments recorded against a purchase request.
func (h *HistorySource) PaymentsForRequest(ctx context.Context, requestID string) ([]settlement.PaymentRecord, error) {
	payloads, err := h.fetch(ctx, paymentsPath, "request_id", requestID)
	if err != nil {
		return nil, err
	}

	records := make([]settlement.PaymentRecord, 0, len(payloads))
	for i, p := range payloads {
		entry, err := p.entry()
		if err != nil {
			return nil, fmt.Errorf("payment %d: %w", i, err)
		}
		if !entry.Method.ValidForPayment() {
			return nil, shared.Errorf(shared.ErrUpstream, "payment %s uses method %s, which is not accepted for payments", entry.ID, entry.Method)
		}
		records = append(records, settlement.PaymentRecord{Entry: entry})
	}
	return records, nil
}

// SettlementsForAccount returns the settlements recorded against an account.
func (h *HistorySource) SettlementsForAccount(ctx context.Context, accountID string) ([]settlement.SettlementRecord, error) {
	payloads, err := h.fetch(ctx, settlementsPath, "account_id", accountID)
	if err != nil {
		return nil, err
	}

	records := make([]settlement.SettlementRecord, 0, len(payloads))
	for i, p := range payloads {
		entry, err := p.entry()
		if err != nil {
			return nil, fmt.Errorf("settlement %d: %w", i, err)
		}
		records = append(records, settlement.SettlementRecord{Entry: entry, Notes: p.Notes})
	}
	return records, nil
}

func (h *HistorySource) fetch(ctx context.Context, path, key, value string) ([]recordPayload, error) {
	if strings.TrimSpace(value) == "" {
		return nil, shared.Errorf(shared.ErrInvalidInput, "%s is required", key)
	}

	var raw json.RawMessage
	if err := h.client.GetJSON(ctx, path, map[string]string{key: value}, &raw); err != nil {
		if IsNotFound(err) {
			return nil, shared.Errorf(shared.ErrNotFound, "no history for %s '%s'", key, value)
		}
		return nil, err
	}
	return decodeRecords(raw)
}

// decodeRecords accepts a bare array or the {"success": true, "data": [...]}
// envelope.
func decodeRecords(raw json.RawMessage) ([]recordPayload, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, shared.Errorf(shared.ErrUpstream, "malformed history response: %v", err)
		}
		raw = bytes.TrimSpace(envelope.Data)
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var payloads []recordPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, shared.Errorf(shared.ErrUpstream, "malformed history response: %v", err)
	}
	return payloads, nil
}

func (p recordPayload) entry() (settlement.Entry, error) {
	method, err := settlement.ParsePaymentMethod(p.Method)
	if err != nil {
		return settlement.Entry{}, shared.Errorf(shared.ErrUpstream, "record %s: %v", p.ID, err)
	}
	date, err := parseDate(p.Date)
	if err != nil {
		return settlement.Entry{}, shared.Errorf(shared.ErrUpstream, "record %s: %v", p.ID, err)
	}
	return settlement.Entry{
		ID:         p.ID,
		Amount:     p.Amount,
		Date:       date,
		Method:     method,
		Reference:  p.Reference,
		RecordedBy: p.RecordedBy,
	}, nil
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
