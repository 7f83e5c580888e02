package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry holds the fields shared by payment and settlement records
type Entry struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Method     PaymentMethod   `json:"method"`
	Reference  string          `json:"reference,omitempty"`
	RecordedBy string          `json:"recorded_by"`
}

// Base returns the entry itself
func (e Entry) Base() Entry {
	return e
}

// PaymentRecord is money received against a purchase request
type PaymentRecord struct {
	Entry
}

// SettlementRecord is money received against an account balance
type SettlementRecord struct {
	Entry
	Notes string `json:"notes,omitempty"`
}

// Record is anything that can be totalled
type Record interface {
	Base() Entry
}
