package dto

import (
	"sort"
	"time"

	"github.com/erp/orderdesk/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Record kinds accepted by POST /settlements/summary
const (
	KindPayment    = "payment"
	KindSettlement = "settlement"
)

// RecordInput is one caller-supplied payment or settlement
type RecordInput struct {
	ID         string          `json:"id" binding:"max=64"`
	Amount     decimal.Decimal `json:"amount" binding:"decimal_nonneg"`
	Date       time.Time       `json:"date"`
	Method     string          `json:"method" binding:"required,payment_method"`
	Reference  string          `json:"reference" binding:"max=100"`
	RecordedBy string          `json:"recorded_by" binding:"max=100"`
	Notes      string          `json:"notes" binding:"max=500"`
}

// SummaryRequest is the body of POST /settlements/summary
type SummaryRequest struct {
	Kind      string          `json:"kind" binding:"required,oneof=payment settlement"`
	TotalOwed decimal.Decimal `json:"total_owed" binding:"decimal_nonneg"`
	Records   []RecordInput   `json:"records" binding:"dive"`
}

// HistoryQuery selects a history fetched from the backend
type HistoryQuery struct {
	SessionID string
	ID        string
	TotalOwed *decimal.Decimal
	Language  language.Tag
}

// MethodStyleResponse is one row of a classification table
type MethodStyleResponse struct {
	Method   string `json:"method"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

// MethodsResponse lists the accepted methods per record kind
type MethodsResponse struct {
	Payment    []MethodStyleResponse `json:"payment"`
	Settlement []MethodStyleResponse `json:"settlement"`
}

// MethodTotal is the amount received through one method
type MethodTotal struct {
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

// SummaryResponse is the aggregate of a payment or settlement history
type SummaryResponse struct {
	Kind                 string          `json:"kind"`
	TotalOwed            decimal.Decimal `json:"total_owed"`
	TotalPaid            decimal.Decimal `json:"total_paid"`
	Outstanding          decimal.Decimal `json:"outstanding"`
	Count                int             `json:"count"`
	State                string          `json:"state"`
	ByMethod             []MethodTotal   `json:"by_method"`
	FormattedTotalPaid   string          `json:"formatted_total_paid"`
	FormattedOutstanding string          `json:"formatted_outstanding"`
}

// RecordResponse is one record of a history
type RecordResponse struct {
	ID         string              `json:"id"`
	Amount     decimal.Decimal     `json:"amount"`
	Date       time.Time           `json:"date"`
	Method     string              `json:"method"`
	Reference  string              `json:"reference,omitempty"`
	RecordedBy string              `json:"recorded_by"`
	Notes      string              `json:"notes,omitempty"`
	Style      MethodStyleResponse `json:"style"`
}

// HistoryResponse is a fetched history plus its aggregate
type HistoryResponse struct {
	ID      string           `json:"id"`
	Records []RecordResponse `json:"records"`
	Summary SummaryResponse  `json:"summary"`
}

// ToMethodStyleResponses converts a classification table
func ToMethodStyleResponses(styles []settlement.MethodStyle) []MethodStyleResponse {
	out := make([]MethodStyleResponse, len(styles))
	for i, s := range styles {
		out[i] = toMethodStyleResponse(s)
	}
	return out
}

func toMethodStyleResponse(s settlement.MethodStyle) MethodStyleResponse {
	return MethodStyleResponse{
		Method:   s.Method.String(),
		Category: s.Category,
		Icon:     s.Icon,
		Color:    s.Color,
	}
}

// ToSummaryResponse converts a domain summary, formatting amounts for lang
func ToSummaryResponse(kind string, s settlement.Summary, lang language.Tag) SummaryResponse {
	methods := make([]string, 0, len(s.ByMethod))
	for m := range s.ByMethod {
		methods = append(methods, m.String())
	}
	sort.Strings(methods)

	byMethod := make([]MethodTotal, len(methods))
	for i, m := range methods {
		amount := s.ByMethod[settlement.PaymentMethod(m)]
		byMethod[i] = MethodTotal{
			Method:    m,
			Amount:    amount,
			Formatted: settlement.FormatAmount(amount, lang),
		}
	}

	return SummaryResponse{
		Kind:                 kind,
		TotalOwed:            s.TotalOwed,
		TotalPaid:            s.TotalPaid,
		Outstanding:          s.Outstanding,
		Count:                s.Count,
		State:                string(s.State),
		ByMethod:             byMethod,
		FormattedTotalPaid:   settlement.FormatAmount(s.TotalPaid, lang),
		FormattedOutstanding: settlement.FormatAmount(s.Outstanding, lang),
	}
}

// ToPaymentRecordResponses converts payment records
func ToPaymentRecordResponses(records []settlement.PaymentRecord) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i, r := range records {
		style, _ := settlement.PaymentStyle(r.Method)
		out[i] = toRecordResponse(r.Entry, "", style)
	}
	return out
}

// ToSettlementRecordResponses converts settlement records
func ToSettlementRecordResponses(records []settlement.SettlementRecord) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i, r := range records {
		style, _ := settlement.SettlementStyle(r.Method)
		out[i] = toRecordResponse(r.Entry, r.Notes, style)
	}
	return out
}

func toRecordResponse(e settlement.Entry, notes string, style settlement.MethodStyle) RecordResponse {
	return RecordResponse{
		ID:         e.ID,
		Amount:     e.Amount,
		Date:       e.Date,
		Method:     e.Method.String(),
		Reference:  e.Reference,
		RecordedBy: e.RecordedBy,
		Notes:      notes,
		Style:      toMethodStyleResponse(style),
	}
}
