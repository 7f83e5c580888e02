package dto

import (
	"time"

	"github.com/erp/orderdesk/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// LineItemInput is one line of a new purchase request
type LineItemInput struct {
	ProductID  string          `json:"product_id" binding:"required,max=64"`
	Name       string          `json:"name" binding:"required,max=200"`
	Unit       string          `json:"unit" binding:"max=32"`
	Quantity   decimal.Decimal `json:"quantity" binding:"decimal_nonneg"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"decimal_nonneg"`
	Department string          `json:"department" binding:"max=100"`
	Attributes map[string]any  `json:"attributes"`
}

// CreatePurchaseRequestRequest is the body of POST /ledger/requests.
// Status and charges cannot be supplied: new requests are always pending
// with zero charges. An omitted total defaults to the subtotal.
type CreatePurchaseRequestRequest struct {
	ID           string           `json:"id" binding:"omitempty,max=64"`
	Items        []LineItemInput  `json:"items" binding:"dive"`
	Subtotal     decimal.Decimal  `json:"subtotal" binding:"decimal_nonneg"`
	Total        *decimal.Decimal `json:"total" binding:"omitempty,decimal_nonneg"`
	CustomerName string           `json:"customer_name" binding:"max=200"`
}

// UpdateStatusRequest is the body of PUT /ledger/requests/:id/status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,request_status"`
}

// UpdateChargesRequest is the body of PUT /ledger/requests/:id/charges
type UpdateChargesRequest struct {
	Charges decimal.Decimal `json:"charges" binding:"decimal_nonneg"`
}

// ListFilter filters GET /ledger/requests
type ListFilter struct {
	Status string `form:"status" binding:"omitempty,request_status"`
}

// ToDraft converts the request into a ledger draft
func (r CreatePurchaseRequestRequest) ToDraft() ledger.Draft {
	items := make([]ledger.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = ledger.LineItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Unit:       item.Unit,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Department: item.Department,
			Attributes: item.Attributes,
		}
	}

	total := r.Subtotal
	if r.Total != nil {
		total = *r.Total
	}
	return ledger.Draft{
		ID:           r.ID,
		Items:        items,
		Subtotal:     r.Subtotal,
		Total:        total,
		CustomerName: r.CustomerName,
	}
}

// PurchaseRequestResponse represents a purchase request in API responses
type PurchaseRequestResponse struct {
	ID           string            `json:"id"`
	Items        []ledger.LineItem `json:"items"`
	ItemCount    int               `json:"item_count"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	Charges      decimal.Decimal   `json:"charges"`
	Total        decimal.Decimal   `json:"total"`
	Status       string            `json:"status"`
	Terminal     bool              `json:"terminal"`
	CustomerName string            `json:"customer_name,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// StatusSummaryResponse counts requests per status
type StatusSummaryResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// ToPurchaseRequestResponse converts a domain request
func ToPurchaseRequestResponse(r ledger.PurchaseRequest) *PurchaseRequestResponse {
	return &PurchaseRequestResponse{
		ID:           r.ID,
		Items:        r.Items,
		ItemCount:    r.ItemCount(),
		Subtotal:     r.Subtotal,
		Charges:      r.Charges,
		Total:        r.Total,
		Status:       r.Status.String(),
		Terminal:     r.Status.IsTerminal(),
		CustomerName: r.CustomerName,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToPurchaseRequestResponses converts a list of domain requests
func ToPurchaseRequestResponses(requests []ledger.PurchaseRequest) []PurchaseRequestResponse {
	out := make([]PurchaseRequestResponse, len(requests))
	for i := range requests {
		out[i] = *ToPurchaseRequestResponse(requests[i])
	}
	return out
}

// ToStatusSummaryResponse converts per-status counts
func ToStatusSummaryResponse(counts map[ledger.RequestStatus]int) StatusSummaryResponse {
	resp := StatusSummaryResponse{ByStatus: make(map[string]int, len(counts))}
	for status, n := range counts {
		resp.ByStatus[status.String()] = n
		resp.Total += n
	}
	return resp
}
