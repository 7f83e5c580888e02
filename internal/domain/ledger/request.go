package ledger

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one line of a purchase request. The ledger stores items as
// given and never derives amounts from them.
type LineItem struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Department string          `json:"department,omitempty"`
	Attributes map[string]any  `json:"attributes,omitempty"`
}

// PurchaseRequest is a customer or department order awaiting unlock and payment
type PurchaseRequest struct {
	ID           string          `json:"id"`
	Items        []LineItem      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Charges      decimal.Decimal `json:"charges"`
	Total        decimal.Decimal `json:"total"`
	Status       RequestStatus   `json:"status"`
	CustomerName string          `json:"customer_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Draft is the caller input for a new purchase request
type Draft struct {
	ID           string
	Items        []LineItem
	Subtotal     decimal.Decimal
	Total        decimal.Decimal
	CustomerName string
}

// NewPurchaseRequest builds a pending request with zero charges. An empty
// draft ID gets a generated one.
func NewPurchaseRequest(d Draft, at time.Time) PurchaseRequest {
	id := strings.TrimSpace(d.ID)
	if id == "" {
		id = uuid.New().String()
	}
	return PurchaseRequest{
		ID:           id,
		Items:        cloneItems(d.Items),
		Subtotal:     d.Subtotal,
		Charges:      decimal.Zero,
		Total:        d.Total,
		Status:       RequestStatusPending,
		CustomerName: strings.TrimSpace(d.CustomerName),
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

// ItemCount returns the number of lines
func (r PurchaseRequest) ItemCount() int {
	return len(r.Items)
}

// clone copies the request deeply enough that callers cannot reach the
// book's item slice
func (r PurchaseRequest) clone() PurchaseRequest {
	r.Items = cloneItems(r.Items)
	return r
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return []LineItem{}
	}
	out := slices.Clone(items)
	for i := range out {
		out[i].Attributes = maps.Clone(out[i].Attributes)
	}
	return out
}
